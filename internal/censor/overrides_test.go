package censor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOverrideTableApply(t *testing.T) {
	table, err := NewOverrideTable([]Override{
		{SongID: "busy-woman", Find: "little *****-ass", Replace: "little *****-***"},
		{Find: "Yeah, bitch", Replace: "Yeah, *****"},
		{SongID: "busy-woman", Find: "anyway", Replace: "any day"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		songID   string
		input    string
		expected string
	}{
		{
			name:     "song specific entries in table order",
			songID:   "busy-woman",
			input:    "your little *****-ass anyway",
			expected: "your little *****-*** any day",
		},
		{
			name:     "other songs only get global entries",
			songID:   "paint-the-town",
			input:    "Yeah, bitch, your little *****-ass anyway",
			expected: "Yeah, *****, your little *****-ass anyway",
		},
		{
			name:     "no match leaves text untouched",
			songID:   "busy-woman",
			input:    "nothing to fix",
			expected: "nothing to fix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Apply(tt.songID, tt.input)
			if got != tt.expected {
				t.Errorf("\nInput:    %q\nGot:      %q\nExpected: %q", tt.input, got, tt.expected)
			}
			if again := table.Apply(tt.songID, got); again != got {
				t.Errorf("second apply changed %q to %q", got, again)
			}
		})
	}
}

func TestNilOverrideTable(t *testing.T) {
	var table *OverrideTable
	if got := table.Apply("any", "text"); got != "text" {
		t.Errorf("got %q", got)
	}
	if table.Len() != 0 {
		t.Errorf("got len %d", table.Len())
	}
}

func TestNewOverrideTableRejects(t *testing.T) {
	tests := map[string]Override{
		"empty find":             {SongID: "x", Find: "", Replace: "y"},
		"replacement grows find": {SongID: "x", Find: "ab", Replace: "abab"},
	}
	for name, o := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewOverrideTable([]Override{o}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	data := `[{"song_id": "abc", "find": "pass that b****", "replace": "pass that *****"}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d entries, want 1", table.Len())
	}
	if got := table.Apply("abc", "pass that b****"); got != "pass that *****" {
		t.Errorf("got %q", got)
	}

	if err := os.WriteFile(path, []byte(`{"not": "a list"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverrides(path); err == nil {
		t.Error("expected an error for malformed overrides")
	}
}

func TestShippedOverrides(t *testing.T) {
	table, err := LoadOverrides(filepath.Join("..", "..", "configs", "overrides.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		songID   string
		input    string
		expected string
	}{
		{
			name:     "paint the town red, word missing from the list",
			songID:   "56y1jOTK0XSvJzVv9vHQBK",
			input:    "Yeah, bitch, I said what I said\nBitch, I said what I said",
			expected: "Yeah, *****, I said what I said\n*****, I said what I said",
		},
		{
			name:     "whats poppin",
			songID:   "1jaTQ3nqY3oAAYyCTbIvnM",
			input:    "I could pass that bitch like Stockton",
			expected: "I could pass that ***** like Stockton",
		},
		{
			name:     "busy woman after generic censoring",
			songID:   "0b0Dz0Gi86SVdBxYeiQcCP",
			input:    "your little *****-ass anyway",
			expected: "your little *****-*** anyway",
		},
		{
			name:     "entries stay with their song",
			songID:   "other",
			input:    "pass that bitch like Stockton",
			expected: "pass that bitch like Stockton",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Apply(tt.songID, tt.input)
			if got != tt.expected {
				t.Errorf("\nInput:    %q\nGot:      %q\nExpected: %q", tt.input, got, tt.expected)
			}
			if twice := table.Apply(tt.songID, got); twice != got {
				t.Errorf("second apply changed %q to %q", got, twice)
			}
		})
	}
}
