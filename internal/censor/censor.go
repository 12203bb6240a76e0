// Package censor masks banned words in puzzle text with asterisk runs of the
// same length, leaving every other character untouched.
package censor

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Censor holds the compiled rules for one banned word list. It is immutable
// and safe for concurrent use.
type Censor struct {
	words []string
	rules []rule
}

const (
	wordClass    = `[\pL\pN_]`
	nonWordClass = `[^\pL\pN_]`
)

// rule masks one capture group of every match of re
type rule struct {
	name string
	re   *regexp.Regexp
}

// New compiles the censoring rules for words. Words are lowercased and
// deduplicated; at any position the longest banned word wins.
func New(words []string) *Censor {
	c := &Censor{words: prepareWords(words)}
	if len(c.words) == 0 {
		return c
	}

	quoted := make([]string, len(c.words))
	for i, w := range c.words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	alt := strings.Join(quoted, "|")

	// RE2 \b only knows ASCII letters, so word edges are spelled out with
	// Unicode classes. Delimiters are consumed by the match and apply
	// repeats until nothing changes to catch words sharing one delimiter.
	c.rules = []rule{
		// "ship" alone, not inside "hardship" or "shipña"
		{"whole-word", regexp.MustCompile(`(?i)(?:^|` + nonWordClass + `)(` + alt + `)(?:` + nonWordClass + `|$)`)},
		{"line-start", regexp.MustCompile(`(?im)^(` + alt + `)(?:` + nonWordClass + `|$)`)},
		// "bitch-ass": only the part before the hyphen
		{"hyphen-prefix", regexp.MustCompile(`(?i)(?:^|` + nonWordClass + `)(` + alt + `)-` + wordClass + `+`)},
		// "half-ass": only the part after the hyphen
		{"hyphen-suffix", regexp.MustCompile(`(?i)` + wordClass + `+-(` + alt + `)(?:` + nonWordClass + `|$)`)},
	}
	return c
}

// Words returns the normalized banned words, longest first
func (c *Censor) Words() []string {
	return append([]string(nil), c.words...)
}

// Censor masks every banned word in text. Asterisks never match a word, so a
// span masked by an earlier rule is not masked twice.
func (c *Censor) Censor(text string) string {
	for _, r := range c.rules {
		text = r.apply(text)
	}
	return text
}

// apply masks matches until the text stops changing. Every changing pass
// turns at least one more rune into '*', so the loop ends.
func (r rule) apply(text string) string {
	for {
		next := r.applyOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func (r rule) applyOnce(text string) string {
	matches := r.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		start, end := m[2], m[3]
		if start < 0 {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(Mask(text[start:end]))
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// Mask returns a run of asterisks as long as word in characters
func Mask(word string) string {
	return strings.Repeat("*", utf8.RuneCountInString(word))
}

func prepareWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	var out []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
