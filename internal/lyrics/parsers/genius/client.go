package genius

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sukalov/lyricle/internal/logger"
)

const apiURL = "https://api.genius.com"

// ErrRateLimited is returned when the provider keeps answering 429
var ErrRateLimited = errors.New("rate limited")

// Client represents the HTTP client for Genius requests
type Client struct {
	httpClient  *http.Client
	userAgent   string
	token       string
	baseURL     string
	maxRetries  int
	retryDelay  time.Duration
	rateLimitCD time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// SearchHit is a song found by the search API
type SearchHit struct {
	URL    string
	Title  string
	Artist string
}

type searchResponse struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				URL           string `json:"url"`
				Title         string `json:"title"`
				PrimaryArtist struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// NewClient creates a new Genius HTTP client authorized with an API access token
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
					MaxVersion: tls.VersionTLS13,
				},
			},
		},
		userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		token:       token,
		baseURL:     apiURL,
		maxRetries:  5,
		retryDelay:  5 * time.Second,
		rateLimitCD: 60 * time.Second,
		sleep:       sleepContext,
	}
}

// Search returns the first song hit for the query, skipping titles that
// contain any of the excluded terms
func (c *Client) Search(ctx context.Context, title, artist string, excluded []string) (SearchHit, error) {
	query := url.QueryEscape(strings.TrimSpace(title + " " + artist))
	body, err := c.get(ctx, c.baseURL+"/search?q="+query, true)
	if err != nil {
		return SearchHit{}, err
	}

	var res searchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return SearchHit{}, fmt.Errorf("failed to decode search response: %w", err)
	}

hits:
	for _, hit := range res.Response.Hits {
		if hit.Type != "song" {
			continue
		}
		for _, term := range excluded {
			if strings.Contains(hit.Result.Title, term) {
				continue hits
			}
		}
		return SearchHit{
			URL:    hit.Result.URL,
			Title:  hit.Result.Title,
			Artist: hit.Result.PrimaryArtist.Name,
		}, nil
	}

	return SearchHit{}, ErrLyricsNotFound
}

// FetchPage fetches the HTML content from the given URL
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	body, err := c.get(ctx, pageURL, false)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// get retries timeouts and server errors after retryDelay and rate limiting
// after a cooldown growing by 30s per attempt. The last attempt does not wait.
func (c *Client) get(ctx context.Context, target string, authorized bool) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		body, status, err := c.getOnce(ctx, target, authorized)
		switch {
		case err == nil && status == http.StatusOK:
			return body, nil
		case err != nil && ctx.Err() != nil:
			return nil, err
		case status == http.StatusTooManyRequests:
			lastErr = ErrRateLimited
			if attempt == c.maxRetries-1 {
				break
			}
			cooldown := c.rateLimitCD + time.Duration(attempt)*30*time.Second
			logger.Info(fmt.Sprintf("Rate limit exceeded\nURL: %s\nCooling down for %s", target, cooldown))
			if err := c.sleep(ctx, cooldown); err != nil {
				return nil, err
			}
		case err != nil || status >= http.StatusInternalServerError:
			if err == nil {
				err = fmt.Errorf("HTTP error! status: %d", status)
			}
			lastErr = err
			if attempt == c.maxRetries-1 {
				break
			}
			logger.Info(fmt.Sprintf("Request failed, retrying (%d/%d)\nURL: %s\nError: %v", attempt+1, c.maxRetries, target, err))
			if err := c.sleep(ctx, c.retryDelay); err != nil {
				return nil, err
			}
		default:
			logger.Error(fmt.Sprintf("HTTP error fetching page\nURL: %s\nStatus: %d", target, status))
			return nil, fmt.Errorf("HTTP error! status: %d", status)
		}
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) getOnce(ctx context.Context, target string, authorized bool) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var reader io.Reader = resp.Body

	// Handle gzip decompression
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
