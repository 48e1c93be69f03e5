package simplifiers

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRunRegex = regexp.MustCompile(` {2,}`)
	retainedChars = map[rune]bool{
		'\t': true,
		'\n': true,
		'\r': true,
		'\f': true,
	}
	entityReplacer = strings.NewReplacer(
		"\u2014", "-",
		"\u2013", "-",
		"&mdash;", "-",
		"&ndash;", "-",
		"\u00a0", " ",
		"\u00ab", `"`,
		"\u00bb", `"`,
		"&quot;", `"`,
		"&gt;", ">",
		"&lt;", "<",
	)
)

// NormalizeEntities maps dashes, guillemets, non-breaking spaces and a few
// escaped entities to plain ASCII, drops control characters and composes the
// result to NFC.
func NormalizeEntities(text string) string {
	text = entityReplacer.Replace(text)
	text = StripControlChars(text)
	return norm.NFC.String(text)
}

// StripControlChars removes Unicode control characters while retaining specific whitespace chars
func StripControlChars(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if !unicode.IsControl(r) || retainedChars[r] {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TidySpaces collapses runs of spaces, pulls a stray space before a period
// onto the preceding word and trims the result.
func TidySpaces(text string) string {
	text = spaceRunRegex.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, " .", ".")
	return strings.TrimSpace(text)
}
