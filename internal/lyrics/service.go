package lyrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sukalov/lyricle/internal/logger"
	"github.com/sukalov/lyricle/internal/lyrics/parsers/genius"
)

// LyricsResult represents the result of lyrics extraction
type LyricsResult struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Text      string    `json:"text"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Service handles lyrics extraction for different sources
type Service struct {
	geniusParser *genius.Parser
}

// NewService creates a new lyrics service backed by the Genius API token
func NewService(geniusToken string) *Service {
	return &Service{
		geniusParser: genius.NewParser(genius.NewClient(geniusToken)),
	}
}

// ExtractLyrics extracts lyrics from a URL based on the source
func (s *Service) ExtractLyrics(ctx context.Context, url string) (*LyricsResult, error) {
	logger.Debug(fmt.Sprintf("ExtractLyrics called with URL: %s", url))

	if strings.Contains(url, "genius.com") {
		result, err := s.geniusParser.ExtractLyricsFromGenius(ctx, url)
		if err != nil {
			return nil, err
		}
		return fromGenius(result), nil
	}

	logger.Error(fmt.Sprintf("Unsupported URL source: %s", url))
	return nil, fmt.Errorf("unsupported URL source: %s", url)
}

// FindLyrics searches the provider for a song and returns its raw lyrics
func (s *Service) FindLyrics(ctx context.Context, title, artist string) (*LyricsResult, error) {
	result, err := s.geniusParser.SearchLyrics(ctx, title, artist)
	if err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("FindLyrics succeeded for %q by %s\nURL: %s\nLyrics length: %d chars",
		title, artist, result.URL, len(result.Text)))

	return fromGenius(result), nil
}

func fromGenius(result *genius.LyricsResult) *LyricsResult {
	return &LyricsResult{
		URL:       result.URL,
		Title:     result.Title,
		Artist:    result.Artist,
		Text:      result.Text,
		Source:    "genius.com",
		FetchedAt: result.FetchedAt,
	}
}
