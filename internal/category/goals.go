package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/lexicon"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var goalsTable = pipeline.Table[types.Goal]{
	Category: types.CategoryGoals,
	Strategies: []pipeline.Strategy[types.Goal]{
		{
			Name:    "my_goal_is",
			Pattern: "my (goal|objective|aim|dream|ambition) is [to] *",
			Base:    tierStrong,
			Parse:   parseGoal,
		},
		{
			Name:    "i_want_to",
			Pattern: "i (want|hope|plan|aim|intend|need) to *",
			Base:    tierHigh - 0.02,
			Parse:   parseGoal,
		},
		{
			Name:    "im_trying_to",
			Pattern: "(i'm|i am) (planning|trying|aiming|hoping) to *",
			Base:    tierModerate,
			Parse:   parseGoal,
		},
		{
			Name:    "id_like_to",
			Pattern: "i'd like to *",
			Base:    0.82,
			Parse:   parseGoal,
		},
		{
			Name:    "i_would_like_to",
			Pattern: "i would like to *",
			Base:    0.82,
			Parse:   parseGoal,
		},
		{
			Name:    "i_wanna",
			Pattern: "i wanna *",
			Base:    tierLow,
			Parse:   parseGoal,
		},
		{
			Name:     "goal_keyword",
			Scan:     scanGoalKeyword,
			Base:     tierWeak,
			Fallback: true,
		},
	},
	Validate:       validateGoal,
	Key:            func(g types.Goal) string { return truncKey(g.Description, 60) },
	Confidence:     func(g types.Goal) float64 { return g.Confidence },
	WithConfidence: func(g types.Goal, c float64) types.Goal { g.Confidence = c; return g },
}

func parseGoal(doc *analyze.Doc, m analyze.Match) []types.Goal {
	if m.IsQuestion() {
		return nil
	}
	sentence := strings.ToLower(m.SentenceText())
	return []types.Goal{{
		Description: m.Rest(),
		Horizon:     inferHorizon(sentence),
		Status:      inferStatus(sentence),
	}}
}

// scanGoalKeyword catches goal statements the patterns miss, keeping
// only sentences that name a goal outright.
func scanGoalKeyword(doc *analyze.Doc) []types.Goal {
	var out []types.Goal
	for i := 0; i < doc.NumSentences(); i++ {
		text := doc.SentenceText(i)
		lower := strings.ToLower(text)
		if !containsAny(lower, "goal", "objective", "milestone") {
			continue
		}
		out = append(out, types.Goal{
			Description: text,
			Horizon:     inferHorizon(lower),
			Status:      inferStatus(lower),
		})
	}
	return out
}

func validateGoal(doc *analyze.Doc, g types.Goal) (types.Goal, bool) {
	if strings.Contains(g.Description, "?") {
		return g, false
	}
	desc, ok := pipeline.Normalize(g.Description, pipeline.NormalizeRules{MinLen: 3, MaxLen: 150})
	if !ok {
		return g, false
	}
	if lexicon.Default().IsVague(desc) {
		return g, false
	}
	g.Description = desc
	return g, true
}

// ExtractGoals returns goal statements found in text.
func ExtractGoals(text string) []types.Goal { return goalsTable.Extract(text) }

// GoalsFromDoc runs the goal table against an analyzed document.
func GoalsFromDoc(doc *analyze.Doc) []types.Goal { return goalsTable.Run(doc) }
