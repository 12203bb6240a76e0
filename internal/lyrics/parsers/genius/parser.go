package genius

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sukalov/lyricle/internal/logger"
)

// ErrLyricsNotFound is returned when no song page or lyric container is found
var ErrLyricsNotFound = errors.New("lyrics not found")

const lyricsContainerSelector = `div[data-lyrics-container="true"]`

// Parser handles the HTML parsing and lyrics extraction
type Parser struct {
	client        *Client
	excludedTerms []string
}

// NewParser creates a new Genius parser
func NewParser(client *Client) *Parser {
	return &Parser{
		client:        client,
		excludedTerms: []string{"(Live)"},
	}
}

// SearchLyrics finds the song on Genius and returns its raw lyrics
func (p *Parser) SearchLyrics(ctx context.Context, title, artist string) (*LyricsResult, error) {
	logger.Debug(fmt.Sprintf("SearchLyrics: Searching for %q by %s", title, artist))

	hit, err := p.client.Search(ctx, title, artist, p.excludedTerms)
	if err != nil {
		logger.Error(fmt.Sprintf("SearchLyrics: Search failed for %q by %s\nError: %v", title, artist, err))
		return nil, err
	}

	result, err := p.ExtractLyricsFromGenius(ctx, hit.URL)
	if err != nil {
		return nil, err
	}
	result.Title = hit.Title
	result.Artist = hit.Artist
	return result, nil
}

// ExtractLyricsFromGenius extracts raw lyrics from a Genius song page
func (p *Parser) ExtractLyricsFromGenius(ctx context.Context, url string) (*LyricsResult, error) {
	logger.Debug(fmt.Sprintf("ExtractLyricsFromGenius: Fetching page %s", url))

	html, err := p.client.FetchPage(ctx, url)
	if err != nil {
		logger.Error(fmt.Sprintf("ExtractLyricsFromGenius: Failed to fetch page %s\nError: %v", url, err))
		return &LyricsResult{
			URL:     url,
			Success: false,
			Error:   err.Error(),
		}, err
	}

	text, err := ExtractLyricsText(html)
	if err != nil {
		logger.Error(fmt.Sprintf("ExtractLyricsFromGenius: No lyrics in page %s\nError: %v", url, err))
		return &LyricsResult{
			URL:     url,
			Success: false,
			Error:   err.Error(),
		}, err
	}

	logger.Debug(fmt.Sprintf("ExtractLyricsFromGenius: Extracted lyrics text (length: %d chars)", len(text)))

	return &LyricsResult{
		URL:       url,
		Text:      text,
		FetchedAt: time.Now(),
		Success:   true,
	}, nil
}

// ExtractLyricsText returns the raw lyric text of a song page: every lyric
// container in document order, line breaks kept, excluded widgets removed
func ExtractLyricsText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(lyricsContainerSelector)
	if selection.Length() == 0 {
		return "", ErrLyricsNotFound
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		s.Find(`[data-exclude-from-selection="true"]`).Remove()
		s.Find("br").ReplaceWithHtml("\n")
		parts = append(parts, s.Text())
	})

	return strings.Join(parts, "\n"), nil
}
