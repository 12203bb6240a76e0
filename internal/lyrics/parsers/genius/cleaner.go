package genius

import (
	"regexp"
	"strings"
)

const maxNormalizePasses = 8

var (
	excessiveBreaksRegex = regexp.MustCompile(`\n{3,}`)
	boilerplateLineRegex = regexp.MustCompile(`(?m)^.*(?:You might also like|LiveGet tickets as low as).*$`)
	parenthesesRegex     = regexp.MustCompile(`\([^)]*\)`)
)

// unicodeReplacer maps look-alike code points seen in provider text to plain ones
var unicodeReplacer = strings.NewReplacer(
	"\u0435", "e", // cyrillic e
	"\u2019", "'",
	"\u2018", "'",
	"\u2005", " ",
	"\u2009", " ",
	"\u202f", " ",
	"\u00a0", " ",
	"\u200b", "",
)

// cleanupRule is a single named rewrite of the lyric text
type cleanupRule struct {
	name  string
	apply func(string) string
}

// cleanupRules are applied in order; later rules rely on the earlier ones
var cleanupRules = []cleanupRule{
	{"drop-recommendations", dropRecommendations},
	{"break-before-sections", breakBeforeSections},
	{"collapse-breaks", collapseBreaks},
	{"drop-contributors", dropContributors},
	{"drop-embed", dropEmbed},
	{"drop-boilerplate-lines", dropBoilerplateLines},
	{"drop-parentheses", dropParentheses},
	{"replace-unicode", unicodeReplacer.Replace},
	{"collapse-breaks-final", collapseBreaks},
}

// Normalize cleans raw provider lyrics into sections separated by blank lines.
// The rule list is repeated until the text stops changing, so
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	text := raw
	for i := 0; i < maxNormalizePasses; i++ {
		next := normalizeOnce(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func normalizeOnce(text string) string {
	for _, rule := range cleanupRules {
		text = rule.apply(text)
	}
	return text
}

// dropRecommendations removes the inline "You might also like" widget text
func dropRecommendations(text string) string {
	return strings.ReplaceAll(text, "You might also like", "")
}

// breakBeforeSections puts every section heading at the start of a new block
func breakBeforeSections(text string) string {
	return strings.ReplaceAll(text, "[", "\n\n[")
}

func collapseBreaks(text string) string {
	return excessiveBreaksRegex.ReplaceAllString(text, "\n\n")
}

// dropContributors removes lines leaking page metadata ("42 ContributorsSong Lyrics")
func dropContributors(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !strings.Contains(line, "Contributors") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// dropEmbed removes a trailing share widget line such as "123Embed"
func dropEmbed(text string) string {
	lines := strings.Split(text, "\n")
	if strings.HasSuffix(lines[len(lines)-1], "Embed") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// dropBoilerplateLines blanks whole lines the literal replacement missed
func dropBoilerplateLines(text string) string {
	return boilerplateLineRegex.ReplaceAllString(text, "")
}

// dropParentheses removes ad-libs and backing vocals together with the brackets
func dropParentheses(text string) string {
	return parenthesesRegex.ReplaceAllString(text, "")
}
