package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Song is one catalog entry handed to curation. Lyrics may be empty when they
// still have to be fetched.
type Song struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	PreviewURL string `json:"preview_url,omitempty"`
	Lyrics     string `json:"lyrics,omitempty"`
}

// Record is an accepted daily puzzle
type Record struct {
	SpotifyID  string `json:"spotify_id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	PreviewURL string `json:"preview_url,omitempty"`
	Chorus     string `json:"chorus"`
}

// Skip reasons counted per curation run
const (
	SkipNoLyrics      = "no_lyrics"
	SkipFetchFailed   = "fetch_failed"
	SkipNoChorus      = "no_chorus"
	SkipEmptyChorus   = "empty_chorus"
	SkipTooLong       = "too_long"
	SkipTooRepetitive = "too_repetitive"
)

// FormatSongName renders "Artist - Title"
func FormatSongName(title, artist string) string {
	if artist == "" {
		artist = "unknown"
	}
	return strings.TrimSpace(fmt.Sprintf("%s - %s", artist, title))
}

// LoadSongs reads a JSON array of songs
func LoadSongs(path string) ([]Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read songs: %w", err)
	}

	var songs []Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("failed to decode songs %s: %w", path, err)
	}
	return songs, nil
}

// SaveRecords writes records as indented UTF-8 JSON without escaping
func SaveRecords(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if records == nil {
		records = []Record{}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return file.Close()
}
