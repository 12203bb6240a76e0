package genius

import (
	"strings"
	"testing"
)

const rawGetLucky = "42 ContributorsNight Shift Lyrics[Intro: Nova]\n" +
	"Like the legend of the harbor\n" +
	"[Verse 1]\n" +
	"We came too far (ooh)\n" +
	"You might also like[Chorus]\n" +
	"We\u2019re up all night\n" +
	"5Embed"

func TestNormalize(t *testing.T) {
	want := "\n\n[Intro: Nova]\n" +
		"Like the legend of the harbor\n\n" +
		"[Verse 1]\n" +
		"We came too far \n\n" +
		"[Chorus]\n" +
		"We're up all night"

	if got := Normalize(rawGetLucky); got != want {
		t.Errorf("\nGot:      %q\nExpected: %q", got, want)
	}
}

func TestNormalizeInvariants(t *testing.T) {
	got := Normalize(rawGetLucky + "\n\n\n\nLiveGet tickets as low as $45\n(hey)\n[Outro]\nbye")

	for _, banned := range []string{"\n\n\n", "Contributors", "You might also like", "LiveGet tickets", "(", ")", "\u2019"} {
		if strings.Contains(got, banned) {
			t.Errorf("normalized text still contains %q:\n%s", banned, got)
		}
	}

	for i := strings.Index(got, "["); i >= 0; {
		if i < 2 || got[i-2:i] != "\n\n" {
			t.Errorf("section marker at %d is not preceded by a blank line:\n%q", i, got)
		}
		next := strings.Index(got[i+1:], "[")
		if next < 0 {
			break
		}
		i += next + 1
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text with no bracket markers",
		rawGetLucky,
		"[Chorus]\nla la\n\n\n\n[Verse]\nfoo",
		"You might also lik\u0435[Chorus]\nsomething",
		"a\n\nAbout 12 Contributors\n\n[Verse]\nb",
		"((nested) aside)\nline",
		"song\n1.2KEmbed",
		"\n\n\n\n",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize is not idempotent for %q\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestCleanupRules(t *testing.T) {
	tests := []struct {
		name     string
		rule     func(string) string
		input    string
		expected string
	}{
		{
			name:     "recommendations removed mid-line",
			rule:     dropRecommendations,
			input:    "last lineYou might also like[Chorus]",
			expected: "last line[Chorus]",
		},
		{
			name:     "break before every section",
			rule:     breakBeforeSections,
			input:    "a[Verse]b",
			expected: "a\n\n[Verse]b",
		},
		{
			name:     "collapse long breaks",
			rule:     collapseBreaks,
			input:    "a\n\n\n\n\nb\n\nc\nd",
			expected: "a\n\nb\n\nc\nd",
		},
		{
			name:     "contributors line dropped entirely",
			rule:     dropContributors,
			input:    "12 ContributorsTranslationsSong Lyrics\nfirst line",
			expected: "first line",
		},
		{
			name:     "embed line with view count dropped",
			rule:     dropEmbed,
			input:    "last lyric\n1.2KEmbed",
			expected: "last lyric",
		},
		{
			name:     "embed only removed from the final line",
			rule:     dropEmbed,
			input:    "Embed\nlast lyric",
			expected: "Embed\nlast lyric",
		},
		{
			name:     "ticket line blanked",
			rule:     dropBoilerplateLines,
			input:    "a\nSee Nova LiveGet tickets as low as $45\nb",
			expected: "a\n\nb",
		},
		{
			name:     "parenthesized asides removed",
			rule:     dropParentheses,
			input:    "Hold on (hold on) to me (yeah)",
			expected: "Hold on  to me ",
		},
		{
			name:     "look-alike characters replaced",
			rule:     unicodeReplacer.Replace,
			input:    "W\u0435 don\u2019t\u2005stop",
			expected: "We don't stop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule(tt.input); got != tt.expected {
				t.Errorf("\nInput:    %q\nGot:      %q\nExpected: %q", tt.input, got, tt.expected)
			}
		})
	}
}
