package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/fathomtext/fathom/internal/analyze"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// note is a minimal item type for exercising the generic engine.
type note struct {
	Text       string
	Extra      string
	Confidence float64
}

func noteTable(strategies ...Strategy[note]) *Table[note] {
	return &Table[note]{
		Category:   "notes",
		Strategies: strategies,
		Validate: func(doc *analyze.Doc, n note) (note, bool) {
			return n, strings.TrimSpace(n.Text) != ""
		},
		Key:            func(n note) string { return n.Text },
		Confidence:     func(n note) float64 { return n.Confidence },
		WithConfidence: func(n note, c float64) note { n.Confidence = c; return n },
		Merge: func(kept, dup note) note {
			if kept.Extra == "" {
				kept.Extra = dup.Extra
			}
			return kept
		},
	}
}

func captureNote(doc *analyze.Doc, m analyze.Match) []note {
	return []note{{Text: m.Rest()}}
}

func TestRunPatternStrategy(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name:    "want",
		Pattern: "i want *",
		Base:    0.9,
		Parse:   captureNote,
	})
	got := tbl.Run(analyze.ParseAt("I want coffee", testNow))
	if len(got) != 1 {
		t.Fatalf("got %d notes, want 1", len(got))
	}
	if got[0].Text != "coffee" {
		t.Errorf("text = %q, want coffee", got[0].Text)
	}
	if got[0].Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", got[0].Confidence)
	}
}

func TestFallbackRunsOnlyWhenPrimaryEmpty(t *testing.T) {
	fallbackRan := false
	tbl := noteTable(
		Strategy[note]{
			Name:    "want",
			Pattern: "i want *",
			Base:    0.9,
			Parse:   captureNote,
		},
		Strategy[note]{
			Name: "catch_all",
			Base: 0.6,
			Scan: func(doc *analyze.Doc) []note {
				fallbackRan = true
				return []note{{Text: "fallback"}}
			},
			Fallback: true,
		},
	)

	got := tbl.Run(analyze.ParseAt("I want coffee", testNow))
	if fallbackRan {
		t.Error("fallback ran despite a primary match")
	}
	if len(got) != 1 || got[0].Text != "coffee" {
		t.Fatalf("unexpected primary result: %+v", got)
	}

	got = tbl.Run(analyze.ParseAt("nothing matches here", testNow))
	if !fallbackRan {
		t.Error("fallback did not run on empty primary result")
	}
	if len(got) != 1 || got[0].Text != "fallback" {
		t.Fatalf("unexpected fallback result: %+v", got)
	}
	if got[0].Confidence != 0.6 {
		t.Errorf("fallback confidence = %v, want 0.6", got[0].Confidence)
	}
}

func TestStrategyPanicIsIsolated(t *testing.T) {
	tbl := noteTable(
		Strategy[note]{
			Name: "boom",
			Scan: func(doc *analyze.Doc) []note { panic("boom") },
		},
		Strategy[note]{
			Name:    "want",
			Pattern: "i want *",
			Base:    0.9,
			Parse:   captureNote,
		},
	)
	got := tbl.Run(analyze.ParseAt("I want coffee", testNow))
	if len(got) != 1 || got[0].Text != "coffee" {
		t.Fatalf("sibling strategy lost after panic: %+v", got)
	}
}

func TestValidatorPanicDropsCandidateOnly(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name: "two",
		Base: 0.8,
		Scan: func(doc *analyze.Doc) []note {
			return []note{{Text: "bad"}, {Text: "good"}}
		},
	})
	tbl.Validate = func(doc *analyze.Doc, n note) (note, bool) {
		if n.Text == "bad" {
			panic("validator bug")
		}
		return n, true
	}
	got := tbl.Run(analyze.ParseAt("anything", testNow))
	if len(got) != 1 || got[0].Text != "good" {
		t.Fatalf("got %+v, want only the good candidate", got)
	}
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name: "emit",
		Base: 0.8,
		Scan: func(doc *analyze.Doc) []note {
			return []note{{Text: "alpha"}, {Text: "beta"}, {Text: "Alpha"}}
		},
	})
	got := tbl.Run(analyze.ParseAt("anything", testNow))
	if len(got) != 2 {
		t.Fatalf("got %d notes, want 2", len(got))
	}
	if got[0].Text != "alpha" || got[1].Text != "beta" {
		t.Errorf("order = %q, %q; want alpha, beta", got[0].Text, got[1].Text)
	}
}

func TestDedupeReplacesConfidenceOnlyWhenHigher(t *testing.T) {
	tbl := noteTable(
		Strategy[note]{
			Name: "weak",
			Base: 0.6,
			Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x"}} },
		},
		Strategy[note]{
			Name: "strong",
			Base: 0.9,
			Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x"}} },
		},
		Strategy[note]{
			Name: "weaker",
			Base: 0.4,
			Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x"}} },
		},
	)
	got := tbl.Run(analyze.ParseAt("anything", testNow))
	if len(got) != 1 {
		t.Fatalf("got %d notes, want 1", len(got))
	}
	if got[0].Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9 (highest duplicate)", got[0].Confidence)
	}
}

func TestDedupeMergeFillsOptionalFields(t *testing.T) {
	tbl := noteTable(
		Strategy[note]{
			Name: "bare",
			Base: 0.8,
			Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x"}} },
		},
		Strategy[note]{
			Name: "detailed",
			Base: 0.5,
			Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x", Extra: "detail"}} },
		},
	)
	got := tbl.Run(analyze.ParseAt("anything", testNow))
	if len(got) != 1 {
		t.Fatalf("got %d notes, want 1", len(got))
	}
	if got[0].Extra != "detail" {
		t.Errorf("Extra = %q, want filled from duplicate", got[0].Extra)
	}
	if got[0].Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8 kept", got[0].Confidence)
	}
}

func TestHedgePenaltyApplied(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name:    "want",
		Pattern: "i want *",
		Base:    0.9,
		Parse:   captureNote,
	})
	got := tbl.Run(analyze.ParseAt("Maybe I want coffee", testNow))
	if len(got) != 1 {
		t.Fatalf("got %d notes, want 1", len(got))
	}
	want := 0.9 * HedgePenalty
	if diff := got[0].Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %v, want %v", got[0].Confidence, want)
	}
}

func TestHedgePenaltyScopedToSentence(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name:    "want",
		Pattern: "i want *",
		Base:    0.9,
		Parse:   captureNote,
	})
	got := tbl.Run(analyze.ParseAt("Maybe I want coffee. I want tea.", testNow))
	if len(got) != 2 {
		t.Fatalf("got %d notes, want 2", len(got))
	}
	hedged := 0.9 * HedgePenalty
	if diff := got[0].Confidence - hedged; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("hedged confidence = %v, want %v", got[0].Confidence, hedged)
	}
	if got[1].Confidence != 0.9 {
		t.Errorf("plain confidence = %v, want 0.9", got[1].Confidence)
	}
}

func TestConfidenceClamped(t *testing.T) {
	tbl := noteTable(
		Strategy[note]{
			Name: "too_high",
			Scan: func(doc *analyze.Doc) []note { return []note{{Text: "hi", Confidence: 1.7}} },
		},
		Strategy[note]{
			Name: "too_low",
			Scan: func(doc *analyze.Doc) []note { return []note{{Text: "lo", Confidence: 0.01}} },
		},
	)
	got := tbl.Run(analyze.ParseAt("anything", testNow))
	if len(got) != 2 {
		t.Fatalf("got %d notes, want 2", len(got))
	}
	for _, n := range got {
		if n.Confidence < MinConfidence || n.Confidence > MaxConfidence {
			t.Errorf("note %q confidence %v outside [%v, %v]", n.Text, n.Confidence, MinConfidence, MaxConfidence)
		}
	}
}

func TestDefaultConfidenceWhenUnscored(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name: "plain",
		Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x"}} },
	})
	got := tbl.Run(analyze.ParseAt("anything", testNow))
	if len(got) != 1 || got[0].Confidence != DefaultConfidence {
		t.Fatalf("got %+v, want default confidence %v", got, DefaultConfidence)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name: "any",
		Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x"}} },
	})
	for _, text := range []string{"", "   ", "\n"} {
		if got := tbl.Extract(text); got != nil {
			t.Errorf("Extract(%q) = %+v, want nil", text, got)
		}
	}
}

func TestRunNilDoc(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name: "any",
		Scan: func(doc *analyze.Doc) []note { return []note{{Text: "x"}} },
	})
	if got := tbl.Run(nil); got != nil {
		t.Errorf("Run(nil) = %+v, want nil", got)
	}
}

func TestEmptyKeyCandidatesDropped(t *testing.T) {
	tbl := noteTable(Strategy[note]{
		Name: "emit",
		Scan: func(doc *analyze.Doc) []note { return []note{{Text: "ok"}} },
	})
	tbl.Key = func(n note) string { return "  " }
	if got := tbl.Run(analyze.ParseAt("anything", testNow)); len(got) != 0 {
		t.Errorf("got %d notes, want 0 for blank keys", len(got))
	}
}
