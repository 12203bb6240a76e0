package genius

import (
	"strings"
)

// ExtractChorus returns the first chorus section of normalized lyrics, trimmed
// from the end line by line until it fits cfg.MaxTotalWords. The returned
// error is one of the skip reasons declared in types.go.
func ExtractChorus(normalized string, cfg ProcessingConfig) (string, error) {
	candidate, ok := chorusCandidate(normalized, cfg.ChorusMarker)
	if !ok {
		return "", ErrNoChorusMarker
	}

	chorus := strings.Trim(candidate, "\n")
	if strings.TrimSpace(chorus) == "" {
		return "", ErrChorusEmpty
	}

	for WordCount(chorus) > cfg.MaxTotalWords {
		chorus = dropLastLine(chorus)
		if strings.TrimSpace(chorus) == "" {
			return "", ErrChorusTooLong
		}
	}

	if UniqueWordCount(chorus) < cfg.MinUniqueWords {
		return "", ErrChorusTooRepetitive
	}

	return chorus, nil
}

// chorusCandidate returns the text between the first line containing marker
// and the next blank line. A section running to the end of the text has no
// closing blank line and yields an empty candidate.
func chorusCandidate(text, marker string) (string, bool) {
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		offset += len(line)
		if strings.Contains(line, marker) {
			if !strings.HasSuffix(line, "\n") {
				return "", true
			}
			// tail starts at the newline closing the anchor line
			tail := text[offset-1:]
			end := strings.Index(tail, "\n\n")
			if end < 0 {
				return "", true
			}
			return tail[:end], true
		}
	}
	return "", false
}

func dropLastLine(text string) string {
	lines := strings.Split(text, "\n")
	return strings.Join(lines[:len(lines)-1], "\n")
}

// WordCount counts whitespace separated words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// UniqueWordCount counts distinct words after lowercasing
func UniqueWordCount(text string) int {
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		seen[strings.ToLower(word)] = struct{}{}
	}
	return len(seen)
}
