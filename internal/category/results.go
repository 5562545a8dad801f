package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

// causalConnector splits a sentence into a cause and its reported
// effect. Order matters only for tie-breaks: the first connector found
// in the sentence wins.
type causalConnector struct {
	phrase   string
	reversed bool // "Y because X": the effect comes first
}

var strongConnectors = []causalConnector{
	{phrase: " which led to ", reversed: false},
	{phrase: " resulting in ", reversed: false},
	{phrase: " as a result ", reversed: false},
	{phrase: " led to ", reversed: false},
}

var moderateConnectors = []causalConnector{
	{phrase: " because ", reversed: true},
	{phrase: " so now ", reversed: false},
	{phrase: " so ", reversed: false},
	{phrase: " therefore ", reversed: false},
}

var resultsTable = pipeline.Table[types.Result]{
	Category: types.CategoryResults,
	Strategies: []pipeline.Strategy[types.Result]{
		{
			Name: "strong_causal",
			Scan: scanConnectors(strongConnectors),
			Base: 0.88,
		},
		{
			Name: "moderate_causal",
			Scan: scanConnectors(moderateConnectors),
			Base: tierLow,
		},
	},
	Validate:       validateResult,
	Key:            func(r types.Result) string { return truncKey(r.Action, 40) + ">" + truncKey(r.Outcome, 40) },
	Confidence:     func(r types.Result) float64 { return r.Confidence },
	WithConfidence: func(r types.Result, c float64) types.Result { r.Confidence = c; return r },
}

// scanConnectors splits each sentence at its first causal connector.
func scanConnectors(connectors []causalConnector) func(*analyze.Doc) []types.Result {
	return func(doc *analyze.Doc) []types.Result {
		var out []types.Result
		for i := 0; i < doc.NumSentences(); i++ {
			sent := doc.SentenceText(i)
			lower := strings.ToLower(sent)
			for _, c := range connectors {
				idx := strings.Index(lower, c.phrase)
				if idx <= 0 {
					continue
				}
				action := sent[:idx]
				outcome := sent[idx+len(c.phrase):]
				if c.reversed {
					action, outcome = outcome, action
				}
				out = append(out, types.Result{
					Action:    action,
					Outcome:   outcome,
					Sentiment: inferSentiment(strings.ToLower(outcome)),
				})
				break
			}
		}
		return out
	}
}

func validateResult(doc *analyze.Doc, r types.Result) (types.Result, bool) {
	if strings.Contains(r.Action, "?") || strings.Contains(r.Outcome, "?") {
		return r, false
	}
	action, ok := pipeline.Normalize(r.Action, pipeline.NormalizeRules{MinLen: 3, MaxLen: 150})
	if !ok {
		return r, false
	}
	outcome, ok := pipeline.Normalize(r.Outcome, pipeline.NormalizeRules{MinLen: 3, MaxLen: 150})
	if !ok {
		return r, false
	}
	if r.Sentiment == "" {
		r.Sentiment = types.SentimentNeutral
	}
	r.Action, r.Outcome = action, outcome
	return r, true
}

// ExtractResults returns causal outcomes reported in text.
func ExtractResults(text string) []types.Result { return resultsTable.Extract(text) }

// ResultsFromDoc runs the result table against a document.
func ResultsFromDoc(doc *analyze.Doc) []types.Result { return resultsTable.Run(doc) }
