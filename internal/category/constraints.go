package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/lexicon"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var constraintsTable = pipeline.Table[types.Constraint]{
	Category: types.CategoryConstraints,
	Strategies: []pipeline.Strategy[types.Constraint]{
		{
			Name:    "on_device",
			Pattern: "(i'm|i am) on [my] [a] (mobile|phone|tablet|ipad)",
			Base:    tierHigh,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Constraint {
				return []types.Constraint{{Type: "device", Description: m.Text()}}
			},
		},
		{
			Name:    "cant_afford",
			Pattern: "i (can't|cannot) afford *",
			Base:    tierHigh,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Constraint {
				return []types.Constraint{{Type: "budget", Description: m.Text()}}
			},
		},
		{
			Name:    "only_have",
			Pattern: "i only have *",
			Base:    tierModerate,
			Parse:   parseScarcityConstraint,
		},
		{
			Name:    "dont_have",
			Pattern: "i don't have *",
			Base:    tierModerate,
			Parse:   parseScarcityConstraint,
		},
		{
			Name:    "new_to",
			Pattern: "(i'm|i am) new to *",
			Base:    tierModerate,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Constraint {
				return []types.Constraint{{Type: "skill", Description: m.Text()}}
			},
		},
		{
			Name:    "my_deadline",
			Pattern: "my deadline is *",
			Base:    tierHigh,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Constraint {
				return []types.Constraint{{Type: "time", Description: m.Text()}}
			},
		},
		{
			Name:    "no_access",
			Pattern: "i (can't|cannot|don't) access *",
			Base:    tierModerate,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Constraint {
				return []types.Constraint{{Type: "access", Description: m.Text()}}
			},
		},
		{
			Name:     "trigger_scan",
			Scan:     scanConstraintTriggers,
			Base:     tierWeak,
			Fallback: true,
		},
	},
	Validate:       validateConstraint,
	Key:            func(c types.Constraint) string { return c.Type },
	Confidence:     func(c types.Constraint) float64 { return c.Confidence },
	WithConfidence: func(c types.Constraint, conf float64) types.Constraint { c.Confidence = conf; return c },
}

// parseScarcityConstraint types "I only have X" / "I don't have X" by
// what is scarce.
func parseScarcityConstraint(doc *analyze.Doc, m analyze.Match) []types.Constraint {
	rest := strings.ToLower(m.Rest())
	typ := ""
	switch {
	case containsAny(rest, "minute", "hour", "time", "day", "week"):
		typ = "time"
	case containsAny(rest, "$", "money", "budget", "cash", "dollar"):
		typ = "budget"
	case containsAny(rest, "access", "permission", "account", "credential"):
		typ = "access"
	case containsAny(rest, "laptop", "computer", "desktop", "keyboard"):
		typ = "device"
	}
	if typ == "" {
		return nil
	}
	return []types.Constraint{{Type: typ, Description: m.Text()}}
}

// scanConstraintTriggers is the keyword fallback over the lexicon's
// constraint trigger tables.
func scanConstraintTriggers(doc *analyze.Doc) []types.Constraint {
	var out []types.Constraint
	for i := 0; i < doc.NumSentences(); i++ {
		text := doc.SentenceText(i)
		lower := strings.ToLower(text)
		for _, typ := range []string{"device", "time", "budget", "access", "skill"} {
			if containsAny(lower, lexicon.Default().Constraints[typ]...) {
				out = append(out, types.Constraint{Type: typ, Description: text})
			}
		}
	}
	return out
}

func validateConstraint(doc *analyze.Doc, c types.Constraint) (types.Constraint, bool) {
	if c.Type == "" {
		return c, false
	}
	desc, ok := pipeline.Normalize(c.Description, pipeline.NormalizeRules{MinLen: 3, MaxLen: 150})
	if !ok {
		return c, false
	}
	c.Description = desc
	return c, true
}

// ExtractConstraints returns stated limitations found in text.
func ExtractConstraints(text string) []types.Constraint { return constraintsTable.Extract(text) }

// ConstraintsFromDoc runs the constraint table against a document.
func ConstraintsFromDoc(doc *analyze.Doc) []types.Constraint { return constraintsTable.Run(doc) }
