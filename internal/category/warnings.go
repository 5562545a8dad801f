package category

import (
	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/lexicon"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var warningsTable = pipeline.Table[types.Warning]{
	Category: types.CategoryWarnings,
	Strategies: []pipeline.Strategy[types.Warning]{
		{
			Name:    "be_careful",
			Pattern: "be careful (with|about|of) *",
			Base:    tierHigh,
			Parse:   parseWarningRelated("risk"),
		},
		{
			Name:    "watch_out",
			Pattern: "watch out for *",
			Base:    tierHigh,
			Parse:   parseWarningRelated("risk"),
		},
		{
			Name:    "blocked_on",
			Pattern: "(i'm|i am|we're|we are) blocked (on|by) *",
			Base:    0.92,
			Parse:   parseWarningRelated("blocker"),
		},
		{
			Name:    "stuck_on",
			Pattern: "(i'm|i am) stuck on *",
			Base:    tierModerate,
			Parse:   parseWarningRelated("blocker"),
		},
		{
			Name:    "due_date",
			Pattern: "(the|my) #Noun is due *",
			Base:    0.88,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Warning {
				return []types.Warning{{Type: "deadline", RelatedTo: m.Token(1).Lower}}
			},
		},
		{
			Name:     "trigger_scan",
			Scan:     scanWarningTriggers,
			Base:     tierWeak,
			Fallback: true,
		},
	},
	Validate:       validateWarning,
	Key:            func(w types.Warning) string { return w.Type },
	Confidence:     func(w types.Warning) float64 { return w.Confidence },
	WithConfidence: func(w types.Warning, c float64) types.Warning { w.Confidence = c; return w },
	Merge: func(kept, dup types.Warning) types.Warning {
		if kept.RelatedTo == "" {
			kept.RelatedTo = dup.RelatedTo
		}
		return kept
	},
}

func parseWarningRelated(typ string) func(*analyze.Doc, analyze.Match) []types.Warning {
	return func(doc *analyze.Doc, m analyze.Match) []types.Warning {
		if m.IsQuestion() {
			return nil
		}
		return []types.Warning{{Type: typ, RelatedTo: m.Rest()}}
	}
}

// scanWarningTriggers is the keyword fallback over the lexicon's
// warning trigger tables.
func scanWarningTriggers(doc *analyze.Doc) []types.Warning {
	lower := doc.Lower()
	var out []types.Warning
	for _, typ := range []string{"risk", "blocker", "deadline", "security", "health"} {
		if containsAny(lower, lexicon.Default().Warnings[typ]...) {
			out = append(out, types.Warning{Type: typ})
		}
	}
	return out
}

func validateWarning(doc *analyze.Doc, w types.Warning) (types.Warning, bool) {
	if w.Type == "" {
		return w, false
	}
	if w.RelatedTo != "" {
		related, ok := pipeline.Normalize(w.RelatedTo, pipeline.NormalizeRules{MinLen: 2, MaxLen: 100, Lower: true})
		if !ok {
			// RelatedTo is nullable; a noisy value degrades to none.
			related = ""
		}
		w.RelatedTo = related
	}
	return w, true
}

// ExtractWarnings returns cautions raised in text.
func ExtractWarnings(text string) []types.Warning { return warningsTable.Extract(text) }

// WarningsFromDoc runs the warning table against a document.
func WarningsFromDoc(doc *analyze.Doc) []types.Warning { return warningsTable.Run(doc) }
