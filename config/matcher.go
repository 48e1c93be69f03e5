package config

import (
	"regexp"
	"strings"
)

// neverMatch is used for empty substring lists.
var neverMatch = regexp.MustCompile(`[^\s\S]`)

// Matcher holds the compiled class/id patterns of a Config.
type Matcher struct {
	Unlikely *regexp.Regexp
	Positive *regexp.Regexp
	Negative *regexp.Regexp
}

// Compile builds the case-insensitive alternations for the three pattern
// lists. Entries are literal substrings, never regular expressions.
func (c *Config) Compile() *Matcher {
	return &Matcher{
		Unlikely: compilePattern(c.UnlikelyCandidates),
		Positive: compilePattern(c.Positive),
		Negative: compilePattern(c.Negative),
	}
}

func compilePattern(items []string) *regexp.Regexp {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" {
			continue
		}
		parts = append(parts, regexp.QuoteMeta(strings.ToLower(it)))
	}
	if len(parts) == 0 {
		return neverMatch
	}
	return regexp.MustCompile(`(?i)` + strings.Join(parts, "|"))
}
