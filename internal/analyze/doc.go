// Package analyze is fathom's linguistic analyzer: word-level
// tokenization with heuristic class tags, sentence splitting, phrase
// pattern matching, and natural-language date detection.
//
// Parse never panics on arbitrary text; any internal failure yields an
// empty document so category extractors fall back to their keyword
// scans. Documents are immutable after construction and safe to share.
package analyze

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	gocache "github.com/patrickmn/go-cache"
)

// MaxInputLength caps the text any document is built from. Longer input
// is truncated before tokenization, bounding worst-case work per call.
const MaxInputLength = 50000

// Truncate caps text at MaxInputLength bytes, backing off to a rune
// boundary so a multi-byte sequence is never cut in half.
func Truncate(text string) string {
	if len(text) <= MaxInputLength {
		return text
	}
	cut := MaxInputLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Doc is an analyzed text: tokens, sentences, and any natural-language
// date references found.
type Doc struct {
	text   string
	tokens []Token
	sents  []sentence
	now    time.Time
	dates  []DateRef
}

// DateRef is a date expression located in the text.
type DateRef struct {
	StartTok, EndTok int // token index range [StartTok, EndTok)
	At               time.Time
	Text             string
}

// Tense classifies the reference against the document's clock.
func (d DateRef) Tense(now time.Time) string {
	switch {
	case d.At.Before(now.Add(-time.Minute)):
		return "past"
	case d.At.After(now.Add(time.Minute)):
		return "future"
	default:
		return "present"
	}
}

var whenParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// docCache memoizes parses of recently seen text. Parsing is pure, so a
// cached document is identical to a fresh one apart from its clock.
var docCache = gocache.New(10*time.Minute, 15*time.Minute)

// Parse analyzes text against the wall clock, memoizing by input.
func Parse(text string) *Doc {
	if doc, ok := docCache.Get(text); ok {
		return doc.(*Doc)
	}
	doc := ParseAt(text, time.Now())
	if len(text) <= 4096 {
		docCache.Set(text, doc, gocache.DefaultExpiration)
	}
	return doc
}

// ParseAt analyzes text against a fixed reference clock. It recovers
// from any internal panic and returns an empty document instead.
func ParseAt(text string, now time.Time) (doc *Doc) {
	defer func() {
		if r := recover(); r != nil {
			doc = &Doc{text: "", now: now}
		}
	}()

	text = Truncate(text)
	doc = &Doc{text: text, now: now}
	if strings.TrimSpace(text) == "" {
		return doc
	}

	doc.tokens, doc.sents = tokenize(text)
	for i := range doc.tokens {
		tagToken(&doc.tokens[i])
	}
	doc.dates = findDates(text, doc.tokens, now)
	for _, d := range doc.dates {
		for i := d.StartTok; i < d.EndTok && i < len(doc.tokens); i++ {
			doc.tokens[i].Tags |= TagDate
		}
	}
	return doc
}

// findDates runs the when parser over the text, walking forward past
// each hit so multiple date expressions are found.
func findDates(text string, tokens []Token, now time.Time) []DateRef {
	var refs []DateRef
	offset := 0
	for range [3]struct{}{} {
		res, err := whenParser.Parse(text[offset:], now)
		if err != nil || res == nil {
			break
		}
		start := offset + res.Index
		end := start + len(res.Text)
		ref := DateRef{At: res.Time, Text: res.Text, StartTok: -1}
		for i, tok := range tokens {
			if tok.End <= start {
				continue
			}
			if tok.Start >= end {
				break
			}
			if ref.StartTok < 0 {
				ref.StartTok = i
			}
			ref.EndTok = i + 1
		}
		if ref.StartTok >= 0 {
			refs = append(refs, ref)
		}
		if end <= offset {
			break
		}
		offset = end
	}
	return refs
}

// Text returns the (possibly truncated) source text.
func (d *Doc) Text() string { return d.text }

// Len returns the number of tokens.
func (d *Doc) Len() int { return len(d.tokens) }

// Tokens returns the token slice. Callers must not modify it.
func (d *Doc) Tokens() []Token { return d.tokens }

// Now returns the document's reference clock.
func (d *Doc) Now() time.Time { return d.now }

// Dates returns the natural-language date references found.
func (d *Doc) Dates() []DateRef { return d.dates }

// Lower returns the lowercased source text.
func (d *Doc) Lower() string { return normalizeLower(d.text) }

// NumSentences returns the sentence count.
func (d *Doc) NumSentences() int { return len(d.sents) }

// SentenceText renders sentence i from its tokens.
func (d *Doc) SentenceText(i int) string {
	if i < 0 || i >= len(d.sents) {
		return ""
	}
	s := d.sents[i]
	parts := make([]string, 0, s.end-s.start)
	for j := s.start; j < s.end; j++ {
		parts = append(parts, d.tokens[j].Text)
	}
	return strings.Join(parts, " ")
}

// sentenceBounds returns the token range of the sentence containing
// token index i.
func (d *Doc) sentenceBounds(i int) (int, int) {
	if i < 0 || i >= len(d.tokens) {
		return 0, 0
	}
	s := d.tokens[i].Sentence
	if s < 0 || s >= len(d.sents) {
		return i, len(d.tokens)
	}
	return d.sents[s].start, d.sents[s].end
}

// IsQuestion reports whether the sentence containing token i ends in a
// question mark.
func (d *Doc) IsQuestion(i int) bool {
	if i < 0 || i >= len(d.tokens) {
		return false
	}
	s := d.tokens[i].Sentence
	return s >= 0 && s < len(d.sents) && d.sents[s].term == '?'
}

// HasQuestion reports whether any sentence is a question.
func (d *Doc) HasQuestion() bool {
	for _, s := range d.sents {
		if s.term == '?' {
			return true
		}
	}
	return false
}

// GuessTense infers a coarse tense for the whole document: the first
// date reference wins, then past-tense verb forms, then future markers.
func (d *Doc) GuessTense() string {
	if len(d.dates) > 0 {
		return d.dates[0].Tense(d.now)
	}
	lower := d.Lower()
	for _, marker := range []string{"will ", "going to ", "gonna ", "about to "} {
		if strings.Contains(lower, marker) {
			return "future"
		}
	}
	for _, tok := range d.tokens {
		switch tok.Lower {
		case "was", "were", "did", "went", "had", "happened", "finished", "ended":
			return "past"
		}
		if strings.HasSuffix(tok.Lower, "ed") && tok.Has(TagVerb) {
			return "past"
		}
	}
	return "present"
}
