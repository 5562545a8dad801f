package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var experiencesTable = pipeline.Table[types.Experience]{
	Category: types.CategoryExperiences,
	Strategies: []pipeline.Strategy[types.Experience]{
		{
			Name:    "worked_at",
			Pattern: "i worked (at|in|for) *",
			Base:    0.88,
			Parse:   parseExperience("work"),
		},
		{
			Name:    "studied",
			Pattern: "i studied *",
			Base:    tierModerate,
			Parse:   parseExperience("education"),
		},
		{
			Name:    "graduated",
			Pattern: "i graduated [from] *",
			Base:    0.88,
			Parse:   parseExperience("education"),
		},
		{
			Name:    "i_built",
			Pattern: "i (built|launched|shipped|created) *",
			Base:    tierModerate,
			Parse:   parseExperience("project"),
		},
		{
			Name:    "used_to",
			Pattern: "i used to *",
			Base:    tierModerate,
			Parse:   parseExperience("life"),
		},
		{
			Name:    "went_through",
			Pattern: "i went (to|through) *",
			Base:    0.80,
			Parse:   parseExperience("life"),
		},
		{
			Name:    "have_been",
			Pattern: "i've been (to|through) *",
			Base:    0.80,
			Parse:   parseExperience("life"),
		},
	},
	Validate:       validateExperience,
	Key:            func(e types.Experience) string { return truncKey(e.Description, 60) },
	Confidence:     func(e types.Experience) float64 { return e.Confidence },
	WithConfidence: func(e types.Experience, c float64) types.Experience { e.Confidence = c; return e },
}

func parseExperience(typ string) func(*analyze.Doc, analyze.Match) []types.Experience {
	return func(doc *analyze.Doc, m analyze.Match) []types.Experience {
		if m.IsQuestion() {
			return nil
		}
		return []types.Experience{{
			Description: m.Rest(),
			Type:        typ,
			Sentiment:   inferSentiment(strings.ToLower(m.SentenceText())),
		}}
	}
}

func validateExperience(doc *analyze.Doc, e types.Experience) (types.Experience, bool) {
	desc, ok := pipeline.Normalize(e.Description, pipeline.NormalizeRules{MinLen: 3, MaxLen: 150})
	if !ok {
		return e, false
	}
	if containsAny(strings.ToLower(desc), "will ", "going to ") {
		return e, false
	}
	if e.Type == "" {
		e.Type = "life"
	}
	if e.Sentiment == "" {
		e.Sentiment = types.SentimentNeutral
	}
	e.Description = desc
	return e, true
}

// ExtractExperiences returns past experiences described in text.
func ExtractExperiences(text string) []types.Experience { return experiencesTable.Extract(text) }

// ExperiencesFromDoc runs the experience table against a document.
func ExperiencesFromDoc(doc *analyze.Doc) []types.Experience { return experiencesTable.Run(doc) }
