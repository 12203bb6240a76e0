package genius

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const songPage = `<html><body>
<div class="header">12 Contributors</div>
<div data-lyrics-container="true">[Verse 1]<br/>Line one<br/><a href="#"><span>Line two</span></a><br/><div data-exclude-from-selection="true">You might also like</div></div>
<div data-lyrics-container="true">[Chorus]<br/>Chorus line</div>
</body></html>`

func TestExtractLyricsText(t *testing.T) {
	got, err := ExtractLyricsText(songPage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"[Verse 1]\nLine one\nLine two", "[Chorus]\nChorus line"} {
		if !strings.Contains(got, want) {
			t.Errorf("lyrics %q do not contain %q", got, want)
		}
	}
	for _, unwanted := range []string{"You might also like", "Contributors"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("lyrics %q contain %q", got, unwanted)
		}
	}
}

func TestExtractLyricsTextMissingContainer(t *testing.T) {
	_, err := ExtractLyricsText(`<html><body><p>Nothing here</p></body></html>`)
	if !errors.Is(err, ErrLyricsNotFound) {
		t.Errorf("got error %v, want %v", err, ErrLyricsNotFound)
	}
}

func newTestClient(baseURL string) (*Client, *[]time.Duration) {
	var slept []time.Duration
	c := NewClient("token")
	c.baseURL = baseURL
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func TestSearchLyrics(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			if r.Header.Get("Authorization") != "Bearer token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprintf(w, `{"response":{"hits":[
				{"type":"song","result":{"url":"%[1]s/live","title":"Night Shift (Live)","primary_artist":{"name":"Nova"}}},
				{"type":"album","result":{"url":"%[1]s/album","title":"Night Shift","primary_artist":{"name":"Nova"}}},
				{"type":"song","result":{"url":"%[1]s/song","title":"Night Shift","primary_artist":{"name":"Nova"}}}
			]}}`, srv.URL)
		case "/song":
			fmt.Fprint(w, songPage)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL)
	result, err := NewParser(client).SearchLyrics(context.Background(), "Night Shift", "Nova")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.URL != srv.URL+"/song" {
		t.Errorf("got URL %q, want the studio version", result.URL)
	}
	if result.Title != "Night Shift" || result.Artist != "Nova" {
		t.Errorf("got %q by %q", result.Title, result.Artist)
	}
	if !result.Success || !strings.Contains(result.Text, "Chorus line") {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSearchNoHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"hits":[]}}`)
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL)
	if _, err := client.Search(context.Background(), "Missing", "Nobody", nil); !errors.Is(err, ErrLyricsNotFound) {
		t.Errorf("got error %v, want %v", err, ErrLyricsNotFound)
	}
}

func TestFetchPageRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			fmt.Fprint(w, "ok")
		}
	}))
	defer srv.Close()

	client, slept := newTestClient(srv.URL)
	body, err := client.FetchPage(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "ok" {
		t.Errorf("got body %q", body)
	}

	want := []time.Duration{60 * time.Second, 5 * time.Second}
	if fmt.Sprint(*slept) != fmt.Sprint(want) {
		t.Errorf("slept %v, want %v", *slept, want)
	}
}

func TestFetchPageGivesUp(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, slept := newTestClient(srv.URL)
	_, err := client.FetchPage(context.Background(), srv.URL)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("got error %v, want %v", err, ErrRateLimited)
	}
	if calls != 5 {
		t.Errorf("got %d calls, want 5", calls)
	}
	want := []time.Duration{60 * time.Second, 90 * time.Second, 120 * time.Second, 150 * time.Second}
	if fmt.Sprint(*slept) != fmt.Sprint(want) {
		t.Errorf("slept %v, want %v", *slept, want)
	}
}

func TestFetchPageGivesUpOnServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, slept := newTestClient(srv.URL)
	if _, err := client.FetchPage(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 5 {
		t.Errorf("got %d calls, want 5", calls)
	}
	if len(*slept) != 4 {
		t.Errorf("slept %v, want 4 delays", *slept)
	}
}

func TestFetchPageClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, _ := newTestClient(srv.URL)
	if _, err := client.FetchPage(context.Background(), srv.URL); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("got %d calls, want no retries", calls)
	}
}
