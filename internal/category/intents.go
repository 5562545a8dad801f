package category

import (
	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var intentsTable = pipeline.Table[types.Intent]{
	Category: types.CategoryIntents,
	Strategies: []pipeline.Strategy[types.Intent]{
		{
			Name: "question",
			Scan: scanQuestions,
			Base: tierHigh,
		},
		{
			Name:    "need_help",
			Pattern: "i need help with *",
			Base:    tierHigh,
			Parse:   parseIntentTarget("ask"),
		},
		{
			Name:    "need_you_to",
			Pattern: "i need you to *",
			Base:    tierHigh,
			Parse:   parseIntentTarget("request"),
		},
		{
			Name:    "please",
			Pattern: "please #Verb *",
			Base:    tierModerate,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Intent {
				return []types.Intent{{Type: "request", Target: m.Token(1).Text + " " + m.Rest()}}
			},
		},
		{
			Name:    "looking_for",
			Pattern: "(i'm|i am) (looking|searching) for *",
			Base:    0.80,
			Parse:   parseIntentTarget("explore"),
		},
		{
			Name:    "just_sharing",
			Pattern: "just (sharing|fyi) *",
			Base:    tierLow,
			Parse:   parseIntentTarget("share"),
		},
	},
	Validate:       validateIntent,
	Key:            func(i types.Intent) string { return i.Type },
	Confidence:     func(i types.Intent) float64 { return i.Confidence },
	WithConfidence: func(i types.Intent, c float64) types.Intent { i.Confidence = c; return i },
	Merge: func(kept, dup types.Intent) types.Intent {
		if kept.Target == "" {
			kept.Target = dup.Target
		}
		return kept
	},
}

var whWords = map[string]bool{
	"how": true, "what": true, "why": true, "when": true,
	"where": true, "who": true, "which": true,
}

var youCanWords = map[string]bool{
	"can": true, "could": true, "would": true, "will": true,
}

// scanQuestions classifies question sentences: wh-questions are asks,
// "can you ..." is a request, anything else seeks confirmation.
func scanQuestions(doc *analyze.Doc) []types.Intent {
	var out []types.Intent
	toks := doc.Tokens()
	for s := 0; s < doc.NumSentences(); s++ {
		var sent []analyze.Token
		for _, t := range toks {
			if t.Sentence == s {
				sent = append(sent, t)
			}
		}
		if len(sent) == 0 || !doc.IsQuestion(indexOfSentence(toks, s)) {
			continue
		}
		first := sent[0].Lower
		target := joinTokens(stripLeadingFiller(sent))
		switch {
		case whWords[first]:
			out = append(out, types.Intent{Type: "ask", Target: target, Confidence: tierHigh})
		case youCanWords[first] && len(sent) > 1 && sent[1].Lower == "you":
			out = append(out, types.Intent{Type: "request", Target: target, Confidence: 0.88})
		default:
			out = append(out, types.Intent{Type: "confirm", Target: target, Confidence: 0.70})
		}
	}
	return out
}

// indexOfSentence returns the index of the first token of sentence s.
func indexOfSentence(toks []analyze.Token, s int) int {
	for i, t := range toks {
		if t.Sentence == s {
			return i
		}
	}
	return -1
}

func parseIntentTarget(typ string) func(*analyze.Doc, analyze.Match) []types.Intent {
	return func(doc *analyze.Doc, m analyze.Match) []types.Intent {
		return []types.Intent{{Type: typ, Target: m.Rest()}}
	}
}

func validateIntent(doc *analyze.Doc, in types.Intent) (types.Intent, bool) {
	switch in.Type {
	case "ask", "request", "share", "explore", "confirm":
	default:
		return in, false
	}
	if in.Target != "" {
		target, ok := pipeline.Normalize(in.Target, pipeline.NormalizeRules{MinLen: 2, MaxLen: 120})
		if !ok {
			target = "" // target is nullable
		}
		in.Target = target
	}
	return in, true
}

// ExtractIntents returns what the writer is asking for.
func ExtractIntents(text string) []types.Intent { return intentsTable.Extract(text) }

// IntentsFromDoc runs the intent table against a document.
func IntentsFromDoc(doc *analyze.Doc) []types.Intent { return intentsTable.Run(doc) }
