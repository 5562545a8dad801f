// Package pipeline implements the category-agnostic extraction engine:
// an ordered strategy table producing candidates, a validator, a
// confidence scorer with hedge penalties, and a key-based deduplicator.
// All 13 category extractors are instances of one Table parameterized by
// their strategy data; none of them duplicate this control flow.
//
// The engine never lets a failure escape: a strategy that panics is
// skipped and logged, sibling strategies still run, and Run itself
// recovers so a category's worst case is an empty result.
package pipeline

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/lexicon"
)

// Confidence model constants shared by every category.
const (
	// DefaultConfidence substitutes when a strategy supplies none.
	DefaultConfidence = 0.5
	// HedgePenalty multiplies the score when hedging language co-occurs.
	HedgePenalty = 0.85
	// MinConfidence and MaxConfidence clamp every final score. Scores
	// never reach exactly 0 or 1; the output is heuristic, not certain.
	MinConfidence = 0.30
	MaxConfidence = 0.99
)

// Strategy is one ordered rule in a category's table: a trigger pattern,
// a parse function, and a base confidence tier. Strategies are
// independent and additive — order only decides which confidence wins on
// a later dedup collision.
type Strategy[T any] struct {
	Name string

	// Pattern is an analyze phrase pattern. When set, Parse is invoked
	// once per pattern match.
	Pattern string
	Parse   func(doc *analyze.Doc, m analyze.Match) []T

	// Scan is a whole-document detector for strategies that do not go
	// through the phrase matcher (plain keyword scans).
	Scan func(doc *analyze.Doc) []T

	// Base is the confidence tier assigned to candidates that do not
	// carry their own score.
	Base float64

	// Fallback strategies run only when no earlier strategy produced a
	// candidate, trading precision for recall in the empty case.
	Fallback bool
}

// Table wires one category's strategies to its validation, scoring, and
// deduplication policy. Tables are built once at init and are read-only.
type Table[T any] struct {
	Category   string
	Strategies []Strategy[T]

	// Validate cleans a raw candidate or rejects it. Required.
	Validate func(doc *analyze.Doc, item T) (T, bool)

	// Key computes the category's dedup key. Required.
	Key func(T) string

	// Confidence reads a candidate's own score; 0 means "not supplied".
	Confidence func(T) float64

	// WithConfidence returns the candidate with its score set. Required.
	WithConfidence func(T, float64) T

	// Merge fills optional fields absent on kept from dup. Optional.
	Merge func(kept, dup T) T

	// MinConfidence / MaxConfidence override the shared clamp bounds
	// when non-zero.
	MinConfidence, MaxConfidence float64
}

// Extract parses text and runs the table. The empty-input and length
// rules of every category extractor live here.
func (t *Table[T]) Extract(text string) []T {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return t.Run(analyze.Parse(analyze.Truncate(text)))
}

// Run applies the full pipeline against an analyzed document. It never
// panics; the worst outcome of any internal failure is a nil result.
func (t *Table[T]) Run(doc *analyze.Doc) (out []T) {
	defer func() {
		if r := recover(); r != nil {
			warnf("category %s: pipeline failure recovered: %v", t.Category, r)
			out = nil
		}
	}()
	if doc == nil || doc.Len() == 0 {
		return nil
	}

	hedges := sentenceHedges(doc)

	var candidates []T
	for _, s := range t.Strategies {
		if s.Fallback {
			continue
		}
		candidates = append(candidates, t.runStrategy(doc, s, hedges)...)
	}
	if len(candidates) == 0 {
		for _, s := range t.Strategies {
			if !s.Fallback {
				continue
			}
			candidates = append(candidates, t.runStrategy(doc, s, hedges)...)
		}
	}

	return t.dedupe(candidates)
}

// sentenceHedges reports, per sentence, whether hedging language occurs
// in it. The penalty is scoped this way so one "maybe" does not soften
// an unrelated confident claim two sentences later.
func sentenceHedges(doc *analyze.Doc) []bool {
	lex := lexicon.Default()
	out := make([]bool, doc.NumSentences())
	for i := range out {
		out[i] = lex.HasHedge(strings.ToLower(doc.SentenceText(i)))
	}
	return out
}

func hedgedAt(hedges []bool, sent int) bool {
	if sent < 0 || sent >= len(hedges) {
		return anyHedged(hedges)
	}
	return hedges[sent]
}

func anyHedged(hedges []bool) bool {
	for _, h := range hedges {
		if h {
			return true
		}
	}
	return false
}

// runStrategy executes one strategy with panic isolation: a buggy rule
// skips its own matches, nothing else. Pattern candidates take the hedge
// flag of the sentence they matched in; scan candidates carry no
// position, so any hedged sentence penalizes them.
func (t *Table[T]) runStrategy(doc *analyze.Doc, s Strategy[T], hedges []bool) (items []T) {
	defer func() {
		if r := recover(); r != nil {
			warnf("category %s: strategy %s skipped: %v", t.Category, s.Name, r)
			items = nil
		}
	}()

	add := func(raw []T, hedged bool) {
		for _, item := range raw {
			clean, ok := t.validate(doc, item)
			if !ok {
				continue
			}
			items = append(items, t.score(clean, s, hedged))
		}
	}

	switch {
	case s.Pattern != "" && s.Parse != nil:
		for _, m := range doc.FindAll(s.Pattern) {
			add(s.Parse(doc, m), hedgedAt(hedges, m.Sentence()))
		}
	case s.Scan != nil:
		add(s.Scan(doc), anyHedged(hedges))
	}
	return items
}

// validate runs the category validator with its own panic isolation, so
// a buggy rejection rule drops one candidate rather than the category.
func (t *Table[T]) validate(doc *analyze.Doc, item T) (clean T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			warnf("category %s: validator skipped candidate: %v", t.Category, r)
			ok = false
		}
	}()
	if t.Validate == nil {
		return item, true
	}
	return t.Validate(doc, item)
}

// score resolves the candidate's confidence: its own score if supplied,
// else the strategy's base tier, else the default; then the hedge
// penalty and the clamp.
func (t *Table[T]) score(item T, s Strategy[T], hedged bool) T {
	conf := 0.0
	if t.Confidence != nil {
		conf = t.Confidence(item)
	}
	if conf <= 0 || isBadFloat(conf) {
		conf = s.Base
	}
	if conf <= 0 || isBadFloat(conf) {
		conf = DefaultConfidence
	}
	if hedged {
		conf *= HedgePenalty
	}
	lo, hi := t.MinConfidence, t.MaxConfidence
	if lo <= 0 {
		lo = MinConfidence
	}
	if hi <= 0 {
		hi = MaxConfidence
	}
	return t.WithConfidence(item, clamp(conf, lo, hi))
}

// dedupe collapses candidates sharing a key, preserving first-seen
// order. On collision the kept item's confidence is replaced only when
// the duplicate's is strictly higher, and optional fields absent on the
// kept item are filled from the duplicate.
func (t *Table[T]) dedupe(items []T) []T {
	if len(items) == 0 {
		return nil
	}
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(t.Key(item)))
		if key == "" {
			continue
		}
		if at, seen := index[key]; seen {
			kept := out[at]
			if t.Confidence != nil && t.Confidence(item) > t.Confidence(kept) {
				kept = t.WithConfidence(kept, t.Confidence(item))
			}
			if t.Merge != nil {
				kept = t.Merge(kept, item)
			}
			out[at] = kept
			continue
		}
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if isBadFloat(v) {
		return DefaultConfidence
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isBadFloat(v float64) bool {
	return v != v || v > 1e308 || v < -1e308
}
