package censor

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Override is a literal replacement applied after the generic rules.
// An empty SongID applies to every song.
type Override struct {
	SongID  string `json:"song_id"`
	Find    string `json:"find"`
	Replace string `json:"replace"`
}

// OverrideTable hand-corrects known censoring failures, in table order.
// A nil table applies nothing.
type OverrideTable struct {
	entries []Override
}

// NewOverrideTable validates entries: Find must be non-empty and must not
// reappear in Replace, otherwise applying the entry twice would differ.
func NewOverrideTable(entries []Override) (*OverrideTable, error) {
	for i, o := range entries {
		if o.Find == "" {
			return nil, fmt.Errorf("override %d: empty find", i)
		}
		if strings.Contains(o.Replace, o.Find) {
			return nil, fmt.Errorf("override %d (song %q): replacement contains %q", i, o.SongID, o.Find)
		}
	}
	return &OverrideTable{entries: append([]Override(nil), entries...)}, nil
}

// LoadOverrides reads a JSON array of overrides
func LoadOverrides(path string) (*OverrideTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides: %w", err)
	}

	var entries []Override
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode overrides %s: %w", path, err)
	}

	return NewOverrideTable(entries)
}

// Apply runs every entry matching songID over text
func (t *OverrideTable) Apply(songID, text string) string {
	if t == nil {
		return text
	}
	for _, o := range t.entries {
		if o.SongID != "" && o.SongID != songID {
			continue
		}
		text = strings.ReplaceAll(text, o.Find, o.Replace)
	}
	return text
}

func (t *OverrideTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
