package genius

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var nightShiftChorus = strings.Join([]string{
	"We keep the city lights on through the night",
	"Every signal calling out across the wire",
	"Hold the rhythm steady while the engines hum",
	"Nobody sleeps until the morning comes",
}, "\n")

func lyricsWithChorus(chorus string) string {
	return "\n\n[Verse 1]\nWalking down the avenue\n\n[Pre-Chorus]\nAlmost there\n\n[Chorus: Nova]\n" +
		chorus + "\n\n[Verse 2]\nSecond verse words\n\n[Chorus: Nova]\nsecond chorus ignored"
}

// uniqueLines builds lines of distinct words with the given word counts
func uniqueLines(counts ...int) []string {
	lines := make([]string, len(counts))
	for i, n := range counts {
		words := make([]string, n)
		for j := range words {
			words[j] = fmt.Sprintf("w%dx%d", i, j)
		}
		lines[i] = strings.Join(words, " ")
	}
	return lines
}

func TestExtractChorus(t *testing.T) {
	got, err := ExtractChorus(lyricsWithChorus(nightShiftChorus), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nightShiftChorus {
		t.Errorf("\nGot:      %q\nExpected: %q", got, nightShiftChorus)
	}
}

func TestExtractChorusAtEndOfText(t *testing.T) {
	tests := []string{
		"\n\n[Verse]\nintro words\n\n[Chorus]\n" + nightShiftChorus + "\n",
		"\n\n[Verse]\nintro words\n\n[Chorus]\n" + nightShiftChorus,
		Normalize("[Verse]\nx y\n\n[Chorus]\n" + strings.Join(uniqueLines(12, 12), "\n")),
	}
	for _, text := range tests {
		if _, err := ExtractChorus(text, DefaultConfig()); !errors.Is(err, ErrChorusEmpty) {
			t.Errorf("ExtractChorus(%q) error = %v, want %v", text, err, ErrChorusEmpty)
		}
	}
}

func TestExtractChorusTrimsToThreshold(t *testing.T) {
	lines := uniqueLines(10, 10, 10, 10, 8, 10, 11, 11)
	chorus := strings.Join(lines, "\n")
	if WordCount(chorus) != 80 {
		t.Fatalf("fixture has %d words, want 80", WordCount(chorus))
	}

	got, err := ExtractChorus(lyricsWithChorus(chorus), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join(lines[:5], "\n")
	if got != want {
		t.Errorf("\nGot:      %q\nExpected: %q", got, want)
	}
	if WordCount(got) != 48 {
		t.Errorf("got %d words, want 48", WordCount(got))
	}
}

func TestExtractChorusBounds(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		chorus  string
		wantErr error
	}{
		{
			name:   "exactly max words",
			chorus: strings.Join(uniqueLines(10, 10, 10, 10, 10), "\n"),
		},
		{
			name:   "twenty unique words",
			chorus: strings.Repeat(uniqueLines(20)[0]+"\n", 2) + "W0X0",
		},
		{
			name:    "nineteen unique words",
			chorus:  uniqueLines(19)[0] + "\n" + uniqueLines(19)[0],
			wantErr: ErrChorusTooRepetitive,
		},
		{
			name:    "same five words repeated thirty times",
			chorus:  strings.TrimSuffix(strings.Repeat("one two three four five\n", 30), "\n"),
			wantErr: ErrChorusTooRepetitive,
		},
		{
			name:    "case folded before counting",
			chorus:  "Hey hey HEY " + strings.Repeat("hey ", 20),
			wantErr: ErrChorusTooRepetitive,
		},
		{
			name:    "single overlong line",
			chorus:  uniqueLines(60)[0],
			wantErr: ErrChorusTooLong,
		},
		{
			name:    "empty chorus",
			chorus:  "",
			wantErr: ErrChorusEmpty,
		},
		{
			name:    "whitespace only chorus",
			chorus:  "   \n\t",
			wantErr: ErrChorusEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractChorus(lyricsWithChorus(tt.chorus), cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if WordCount(got) > cfg.MaxTotalWords || UniqueWordCount(got) < cfg.MinUniqueWords {
				t.Errorf("chorus outside bounds: %d words, %d unique", WordCount(got), UniqueWordCount(got))
			}
		})
	}
}

func TestExtractChorusCustomThresholds(t *testing.T) {
	cfg := ProcessingConfig{ChorusMarker: "[Hook", MaxTotalWords: 4, MinUniqueWords: 3}
	text := "[Hook]\nred green\nblue yellow\nred red\n\n[Verse]\nx"

	got, err := ExtractChorus(text, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "red green\nblue yellow" {
		t.Errorf("got %q", got)
	}

	cfg.MinUniqueWords = 5
	if _, err := ExtractChorus(text, cfg); !errors.Is(err, ErrChorusTooRepetitive) {
		t.Errorf("got error %v, want %v", err, ErrChorusTooRepetitive)
	}
}

func TestExtractChorusNoMarker(t *testing.T) {
	tests := []string{
		"plain text with no bracket markers",
		"",
		"\n\n[Verse]\nsome words\n\n[Pre-Chorus]\nmore words",
	}
	for _, text := range tests {
		if _, err := ExtractChorus(text, DefaultConfig()); !errors.Is(err, ErrNoChorusMarker) {
			t.Errorf("ExtractChorus(%q) error = %v, want %v", text, err, ErrNoChorusMarker)
		}
	}
}

func TestExtractChorusMarkerOnLastLine(t *testing.T) {
	if _, err := ExtractChorus("words\n\n[Chorus]", DefaultConfig()); !errors.Is(err, ErrChorusEmpty) {
		t.Errorf("got error %v, want %v", err, ErrChorusEmpty)
	}
}
