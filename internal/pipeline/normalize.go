package pipeline

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/fathomtext/fathom/internal/lexicon"
)

// NormalizeRules bound what a category accepts as a cleaned value.
type NormalizeRules struct {
	MinLen int // reject below; 0 means the shared default of 3
	MaxLen int // reject above; 0 means the shared default of 150
	Lower  bool
}

var spaceRE = regexp.MustCompile(`\s+`)

const quoteChars = "\"'`“”‘’"

// Normalize trims, strips wrapping quotes and trailing sentence
// punctuation, collapses whitespace, and rejects values that are too
// short, too long, blocklisted placeholders, or free of any alphabetic
// run of at least two letters. Pure; returns ok=false on rejection.
func Normalize(raw string, rules NormalizeRules) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, quoteChars)
	s = strings.TrimRight(s, ".!?,;: ")
	s = spaceRE.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if rules.Lower {
		s = strings.ToLower(s)
	}

	minLen, maxLen := rules.MinLen, rules.MaxLen
	if minLen == 0 {
		minLen = 3
	}
	if maxLen == 0 {
		maxLen = 150
	}
	if len(s) < minLen || len(s) > maxLen {
		return "", false
	}
	if lexicon.Default().Blocked(s) {
		return "", false
	}
	if !hasAlphaRun(s, 2) {
		return "", false
	}
	return s, true
}

// hasAlphaRun reports whether s contains n consecutive letters.
func hasAlphaRun(s string, n int) bool {
	run := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
