package genius

import (
	"errors"
	"time"
)

// LyricsResult represents the extracted lyrics result
type LyricsResult struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// SectionType represents different song sections
type SectionType string

const (
	SectionVerse     SectionType = "Verse"
	SectionPreChorus SectionType = "Pre-Chorus"
	SectionChorus    SectionType = "Chorus"
	SectionBridge    SectionType = "Bridge"
	SectionIntro     SectionType = "Intro"
	SectionOutro     SectionType = "Outro"
)

// Marker returns the opening of a bracketed heading for the section, e.g. "[Chorus".
func (s SectionType) Marker() string {
	return "[" + string(s)
}

// ProcessingConfig holds the chorus acceptance thresholds
type ProcessingConfig struct {
	ChorusMarker   string
	MaxTotalWords  int
	MinUniqueWords int
}

// DefaultConfig returns the thresholds used for daily puzzles
func DefaultConfig() ProcessingConfig {
	return ProcessingConfig{
		ChorusMarker:   SectionChorus.Marker(),
		MaxTotalWords:  50,
		MinUniqueWords: 20,
	}
}

// Skip reasons returned by ExtractChorus. None of them is fatal for a batch.
var (
	ErrNoChorusMarker      = errors.New("no chorus marker")
	ErrChorusEmpty         = errors.New("chorus is empty")
	ErrChorusTooLong       = errors.New("chorus too long")
	ErrChorusTooRepetitive = errors.New("chorus too repetitive")
)
