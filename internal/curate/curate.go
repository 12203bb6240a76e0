package curate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sukalov/lyricle/internal/censor"
	"github.com/sukalov/lyricle/internal/logger"
	"github.com/sukalov/lyricle/internal/lyrics"
	"github.com/sukalov/lyricle/internal/lyrics/parsers/genius"
	"github.com/sukalov/lyricle/internal/puzzle"
)

const defaultWorkers = 8

// LyricsFinder fetches raw lyrics for songs that arrive without them
type LyricsFinder interface {
	FindLyrics(ctx context.Context, title, artist string) (*lyrics.LyricsResult, error)
}

// Sink receives every accepted record as soon as it is ready
type Sink interface {
	AddRecord(ctx context.Context, record puzzle.Record) error
}

// SkipCounter persists skip counts of a run
type SkipCounter interface {
	IncrementSkip(ctx context.Context, runID, reason string) error
}

// Config holds everything a run needs besides the songs.
// A nil Censor keeps choruses uncensored.
type Config struct {
	Processing genius.ProcessingConfig
	Censor     *censor.Censor
	Overrides  *censor.OverrideTable
	Workers    int
}

// DefaultConfig returns the daily puzzle thresholds with no censoring
func DefaultConfig() Config {
	return Config{
		Processing: genius.DefaultConfig(),
		Workers:    defaultWorkers,
	}
}

// Summary describes a finished run
type Summary struct {
	RunID    string         `json:"run_id"`
	Queried  int            `json:"queried"`
	Accepted int            `json:"accepted"`
	Skips    map[string]int `json:"skips"`
}

// Curator turns catalog songs into puzzle records
type Curator struct {
	cfg      Config
	finder   LyricsFinder
	sink     Sink
	counter  SkipCounter
	progress func()
}

// Option configures optional collaborators of a Curator
type Option func(*Curator)

func WithFinder(finder LyricsFinder) Option { return func(c *Curator) { c.finder = finder } }

func WithSink(sink Sink) Option { return func(c *Curator) { c.sink = sink } }

func WithSkipCounter(counter SkipCounter) Option { return func(c *Curator) { c.counter = counter } }

// WithProgress registers a callback invoked once per processed song
func WithProgress(progress func()) Option { return func(c *Curator) { c.progress = progress } }

func New(cfg Config, opts ...Option) *Curator {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	c := &Curator{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Process runs normalization, chorus extraction, censoring and overrides for
// a song whose lyrics are already known. It touches no shared state.
func Process(song puzzle.Song, cfg Config) (puzzle.Record, error) {
	if song.Lyrics == "" {
		return puzzle.Record{}, ErrNoLyrics
	}

	chorus, err := genius.ExtractChorus(genius.Normalize(song.Lyrics), cfg.Processing)
	if err != nil {
		return puzzle.Record{}, err
	}

	if cfg.Censor != nil {
		chorus = cfg.Censor.Censor(chorus)
	}
	chorus = cfg.Overrides.Apply(song.ID, chorus)

	return puzzle.Record{
		SpotifyID:  song.ID,
		Title:      song.Title,
		Artist:     song.Artist,
		PreviewURL: song.PreviewURL,
		Chorus:     chorus,
	}, nil
}

// ErrNoLyrics marks a song with no lyrics and no way to fetch them
var ErrNoLyrics = errors.New("no lyrics")

// errFetch wraps provider failures so they are counted as skips
type errFetch struct{ err error }

func (e errFetch) Error() string { return "fetch lyrics: " + e.err.Error() }
func (e errFetch) Unwrap() error { return e.err }

// SkipReason maps a Process error to the reason recorded for the run
func SkipReason(err error) string {
	var fetchErr errFetch
	switch {
	case errors.As(err, &fetchErr):
		return puzzle.SkipFetchFailed
	case errors.Is(err, ErrNoLyrics):
		return puzzle.SkipNoLyrics
	case errors.Is(err, genius.ErrNoChorusMarker):
		return puzzle.SkipNoChorus
	case errors.Is(err, genius.ErrChorusEmpty):
		return puzzle.SkipEmptyChorus
	case errors.Is(err, genius.ErrChorusTooLong):
		return puzzle.SkipTooLong
	case errors.Is(err, genius.ErrChorusTooRepetitive):
		return puzzle.SkipTooRepetitive
	default:
		return "other"
	}
}

// Run curates songs with a pool of workers. Records keep the input order.
// Per-song failures are skips; Run only fails when ctx is cancelled.
func (c *Curator) Run(ctx context.Context, songs []puzzle.Song) ([]puzzle.Record, Summary, error) {
	summary := Summary{
		RunID:   uuid.NewString(),
		Queried: len(songs),
		Skips:   make(map[string]int),
	}
	logger.Info(fmt.Sprintf("Curation run %s started\nSongs: %d\nWorkers: %d", summary.RunID, len(songs), c.cfg.Workers))

	slots := make([]*puzzle.Record, len(songs))
	jobs := make(chan int)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for w := 0; w < c.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				record, err := c.curateOne(ctx, songs[i])
				if err != nil {
					reason := SkipReason(err)
					logger.Debug(fmt.Sprintf("Skipping %s: %s (%v)", puzzle.FormatSongName(songs[i].Title, songs[i].Artist), reason, err))
					mu.Lock()
					summary.Skips[reason]++
					mu.Unlock()
					if c.counter != nil {
						if err := c.counter.IncrementSkip(ctx, summary.RunID, reason); err != nil {
							logger.Error(fmt.Sprintf("Failed to count skip for run %s\nError: %v", summary.RunID, err))
						}
					}
				} else {
					slots[i] = &record
					if c.sink != nil {
						if err := c.sink.AddRecord(ctx, record); err != nil {
							logger.Error(fmt.Sprintf("Failed to store record %s\nError: %v", record.SpotifyID, err))
						}
					}
				}
				if c.progress != nil {
					c.progress()
				}
			}
		}()
	}

feed:
	for i := range songs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, summary, err
	}

	records := make([]puzzle.Record, 0, len(songs))
	for _, r := range slots {
		if r != nil {
			records = append(records, *r)
		}
	}
	summary.Accepted = len(records)

	logger.Success(fmt.Sprintf("Curation run %s finished\nTotal songs queried: %d\nTotal songs in game data: %d\nSkips: %v",
		summary.RunID, summary.Queried, summary.Accepted, summary.Skips))

	return records, summary, nil
}

func (c *Curator) curateOne(ctx context.Context, song puzzle.Song) (puzzle.Record, error) {
	if song.Lyrics == "" && c.finder != nil {
		result, err := c.finder.FindLyrics(ctx, song.Title, song.Artist)
		if err != nil {
			return puzzle.Record{}, errFetch{err}
		}
		song.Lyrics = result.Text
		if result.Title != "" {
			song.Title = result.Title
		}
		if result.Artist != "" {
			song.Artist = result.Artist
		}
	}
	return Process(song, c.cfg)
}
