package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
)

// Shared confidence tiers. Strong phrasing is explicit and unambiguous,
// moderate phrasing is a clear indicator with some slack, weak covers
// hedged phrasing and keyword-only fallback scans.
const (
	tierStrong   = 0.95
	tierHigh     = 0.90
	tierModerate = 0.85
	tierLow      = 0.78
	tierWeak     = 0.60
	tierFallback = 0.55
)

// containsAny reports whether lowered text contains any needle.
func containsAny(lower string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// truncKey lowercases and truncates a dedup key component to n runes.
func truncKey(s string, n int) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if r := []rune(s); len(r) > n {
		s = string(r[:n])
	}
	return strings.TrimSpace(s)
}

// inferHorizon maps temporal phrasing in a sentence to a goal horizon.
func inferHorizon(lower string) string {
	if containsAny(lower, "today", "tonight", "this week", "soon", "asap", "right away", "by tomorrow") {
		return "short"
	}
	if containsAny(lower, "someday", "eventually", "one day", "long term", "long-term", "in a few years", "over the years") {
		return "long"
	}
	return "medium"
}

// inferStatus maps progress phrasing to a goal/job status.
func inferStatus(lower string) string {
	if containsAny(lower, "on hold", "paused", "pausing", "taking a break", "stepped back", "shelved") {
		return "paused"
	}
	if containsAny(lower, "almost done", "almost there", "nearly done", "wrapping up", "finishing", "final stretch") {
		return "completing"
	}
	return "active"
}

// inferSentiment classifies the tone of a sentence.
func inferSentiment(lower string) string {
	if containsAny(lower, "loved", "love", "great", "amazing", "enjoyed", "wonderful", "fantastic", "proud", "worked well", "succeeded", "passed", "faster", "better") {
		return "positive"
	}
	if containsAny(lower, "hated", "awful", "terrible", "failed", "broke", "crashed", "worse", "slower", "regret", "burnout", "miserable") {
		return "negative"
	}
	return "neutral"
}

// stripLeadingFiller drops leading function words from captured tokens
// so targets read as content phrases ("how do i fix X" -> "fix X").
func stripLeadingFiller(toks []analyze.Token) []analyze.Token {
	filler := map[string]bool{
		"how": true, "what": true, "why": true, "when": true, "where": true,
		"who": true, "which": true, "do": true, "does": true, "did": true,
		"can": true, "could": true, "should": true, "would": true, "will": true,
		"is": true, "are": true, "was": true, "i": true, "you": true, "we": true,
		"the": true, "a": true, "an": true, "to": true, "my": true, "me": true,
		"please": true,
	}
	for len(toks) > 0 && filler[toks[0].Lower] {
		toks = toks[1:]
	}
	return toks
}

// joinTokens renders tokens as a space-separated phrase.
func joinTokens(toks []analyze.Token) string {
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}
