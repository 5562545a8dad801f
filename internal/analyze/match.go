package analyze

import (
	"strconv"
	"strings"
)

// Match is one phrase-pattern hit: an ordered set of token indices plus
// the subset captured by a trailing '*'. Matches are value types; Clone
// and Remove return modified copies without touching the original.
type Match struct {
	doc  *Doc
	toks []int
	rest []int
}

// Len returns the number of tokens in the match span.
func (m Match) Len() int { return len(m.toks) }

// Text renders the whole match span.
func (m Match) Text() string { return m.doc.join(m.toks) }

// Rest renders the tokens captured by the trailing '*'.
func (m Match) Rest() string { return m.doc.join(m.rest) }

// RestLen returns the number of captured rest tokens.
func (m Match) RestLen() int { return len(m.rest) }

// Token returns the i-th token of the span.
func (m Match) Token(i int) Token {
	if i < 0 || i >= len(m.toks) {
		return Token{}
	}
	return m.doc.tokens[m.toks[i]]
}

// RestTokens returns the tokens captured by '*'.
func (m Match) RestTokens() []Token {
	out := make([]Token, 0, len(m.rest))
	for _, i := range m.rest {
		out = append(out, m.doc.tokens[i])
	}
	return out
}

// Sentence returns the index of the sentence the match starts in.
func (m Match) Sentence() int {
	if len(m.toks) == 0 {
		return -1
	}
	return m.doc.tokens[m.toks[0]].Sentence
}

// SentenceText renders the full sentence the match starts in.
func (m Match) SentenceText() string {
	return m.doc.SentenceText(m.Sentence())
}

// IsQuestion reports whether the match's sentence ends in '?'.
func (m Match) IsQuestion() bool {
	if len(m.toks) == 0 {
		return false
	}
	return m.doc.IsQuestion(m.toks[0])
}

// Clone returns an independent copy of the match.
func (m Match) Clone() Match {
	return Match{
		doc:  m.doc,
		toks: append([]int(nil), m.toks...),
		rest: append([]int(nil), m.rest...),
	}
}

// Remove drops the first occurrence of the literal phrase from the
// match span (and from the rest capture), returning the reduced match.
// Strategies use this to strip a trigger phrase and keep the remainder.
func (m Match) Remove(phrase string) Match {
	words := strings.Fields(normalizeLower(phrase))
	if len(words) == 0 {
		return m.Clone()
	}
	start := -1
	for i := 0; i+len(words) <= len(m.toks); i++ {
		ok := true
		for j, w := range words {
			if m.doc.tokens[m.toks[i+j]].Lower != w {
				ok = false
				break
			}
		}
		if ok {
			start = i
			break
		}
	}
	if start < 0 {
		return m.Clone()
	}
	dropped := make(map[int]bool, len(words))
	for j := 0; j < len(words); j++ {
		dropped[m.toks[start+j]] = true
	}
	out := Match{doc: m.doc}
	for _, i := range m.toks {
		if !dropped[i] {
			out.toks = append(out.toks, i)
		}
	}
	for _, i := range m.rest {
		if !dropped[i] {
			out.rest = append(out.rest, i)
		}
	}
	return out
}

// Values extracts numeric values from Value-tagged tokens in the span.
func (m Match) Values() []float64 {
	var out []float64
	for _, i := range m.toks {
		tok := m.doc.tokens[i]
		if !tok.Has(TagValue) {
			continue
		}
		if v, ok := parseValue(tok.Lower); ok {
			out = append(out, v)
		}
	}
	return out
}

// parseValue turns numeric shorthands into floats: "$1.5k" -> 1500.
func parseValue(s string) (float64, bool) {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1e3, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1e6, strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "b"):
		mult, s = 1e9, strings.TrimSuffix(s, "b")
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v * mult, true
}

// join renders token indices as a space-separated string.
func (d *Doc) join(idx []int) string {
	if len(idx) == 0 {
		return ""
	}
	parts := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(d.tokens) {
			parts = append(parts, d.tokens[i].Text)
		}
	}
	return strings.Join(parts, " ")
}
