package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sukalov/lyricle/internal/puzzle"
)

type Puzzle struct {
	SpotifyID  string
	Title      string
	Artist     string
	PreviewURL sql.NullString
	Chorus     string
	RunID      string
	UpdatedAt  time.Time
}

type PuzzlebookType struct {
	puzzles []Puzzle
	mu      sync.RWMutex
}

var Puzzlebook = &PuzzlebookType{}

func (p *PuzzlebookType) init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	rows, err := Database.QueryContext(ctx,
		"SELECT spotify_id, title, artist, preview_url, chorus, run_id, updated_at FROM puzzles")
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var puzzles []Puzzle
	for rows.Next() {
		var pz Puzzle
		var updatedAt int64
		if err := rows.Scan(&pz.SpotifyID, &pz.Title, &pz.Artist, &pz.PreviewURL, &pz.Chorus, &pz.RunID, &updatedAt); err != nil {
			log.Printf("error scanning row: %v", err)
			continue
		}
		pz.UpdatedAt = time.Unix(updatedAt, 0)
		puzzles = append(puzzles, pz)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error during rows iteration: %w", err)
	}

	p.puzzles = puzzles
	return nil
}

func (p *PuzzlebookType) FindPuzzleByID(id string) (Puzzle, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, pz := range p.puzzles {
		if pz.SpotifyID == id {
			return pz, true
		}
	}
	return Puzzle{}, false
}

// SearchPuzzles matches query against title and artist, case-insensitively
func (p *PuzzlebookType) SearchPuzzles(query string) []Puzzle {
	p.mu.RLock()
	defer p.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	var results []Puzzle
	for _, pz := range p.puzzles {
		if strings.Contains(strings.ToLower(pz.Title), query) || strings.Contains(strings.ToLower(pz.Artist), query) {
			results = append(results, pz)
		}
	}
	return results
}

func (p *PuzzlebookType) FormatPuzzleName(pz Puzzle) string {
	return puzzle.FormatSongName(pz.Title, pz.Artist)
}

// SaveRun upserts every record of a run in one transaction
func (p *PuzzlebookType) SaveRun(ctx context.Context, runID string, records []puzzle.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := Database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO puzzles (spotify_id, title, artist, preview_url, chorus, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(spotify_id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			preview_url = excluded.preview_url,
			chorus = excluded.chorus,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at`

	now := time.Unix(time.Now().Unix(), 0)
	saved := make([]Puzzle, 0, len(records))
	for _, r := range records {
		pz := Puzzle{
			SpotifyID:  r.SpotifyID,
			Title:      r.Title,
			Artist:     r.Artist,
			PreviewURL: sql.NullString{String: r.PreviewURL, Valid: r.PreviewURL != ""},
			Chorus:     r.Chorus,
			RunID:      runID,
			UpdatedAt:  now,
		}
		if _, err := tx.ExecContext(ctx, query, pz.SpotifyID, pz.Title, pz.Artist, pz.PreviewURL, pz.Chorus, pz.RunID, pz.UpdatedAt.Unix()); err != nil {
			return fmt.Errorf("failed to upsert puzzle %s: %w", r.SpotifyID, err)
		}
		saved = append(saved, pz)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", runID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.merge(saved)
	return nil
}

// merge must be called with mu held
func (p *PuzzlebookType) merge(saved []Puzzle) {
	index := make(map[string]int, len(p.puzzles))
	for i, pz := range p.puzzles {
		index[pz.SpotifyID] = i
	}
	for _, pz := range saved {
		if i, ok := index[pz.SpotifyID]; ok {
			p.puzzles[i] = pz
			continue
		}
		index[pz.SpotifyID] = len(p.puzzles)
		p.puzzles = append(p.puzzles, pz)
	}
}
