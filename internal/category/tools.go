package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/lexicon"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var toolsTable = pipeline.Table[types.Tool]{
	Category: types.CategoryTools,
	Strategies: []pipeline.Strategy[types.Tool]{
		{
			Name:    "im_using",
			Pattern: "(i'm|i am|we're|we are) using *",
			Base:    tierHigh,
			Parse:   parseToolContext(types.ToolInUse),
		},
		{
			Name:    "i_use",
			Pattern: "(i|we) (use|run) *",
			Base:    0.88,
			Parse:   parseToolContext(types.ToolInUse),
		},
		{
			Name:    "planning_to_use",
			Pattern: "(i'm|i am|we're|we are) (planning|going) to (use|try|adopt) *",
			Base:    tierModerate,
			Parse:   parseToolContext(types.ToolPlanned),
		},
		{
			Name:    "switched_to",
			Pattern: "(i|we) switched to *",
			Base:    tierModerate,
			Parse:   parseToolContext(types.ToolInUse),
		},
		{
			Name:    "stopped_using",
			Pattern: "(i|we) (stopped|quit) using *",
			Base:    0.88,
			Parse:   parseToolContext(types.ToolDeprecated),
		},
		{
			Name: "known_tool_scan",
			Scan: scanKnownTools,
			Base: 0.70,
		},
	},
	Validate:       validateTool,
	Key:            func(t types.Tool) string { return t.Type + ":" + truncKey(t.Name, 40) },
	Confidence:     func(t types.Tool) float64 { return t.Confidence },
	WithConfidence: func(t types.Tool, c float64) types.Tool { t.Confidence = c; return t },
}

// parseToolContext extracts the tool named after a usage trigger. A
// known lexicon tool inside the remainder wins; otherwise the remainder
// itself is the name.
func parseToolContext(context string) func(*analyze.Doc, analyze.Match) []types.Tool {
	return func(doc *analyze.Doc, m analyze.Match) []types.Tool {
		rest := m.Rest()
		lower := strings.ToLower(rest)
		lex := lexicon.Default()
		if name := firstKnownTool(lower, lex); name != "" {
			return []types.Tool{{Type: lex.ToolType(name), Name: name, Context: context}}
		}
		return []types.Tool{{Type: types.ToolSoftware, Name: rest, Context: context}}
	}
}

// scanKnownTools finds lexicon tool names anywhere in the text and
// infers their usage context from the surrounding sentence.
func scanKnownTools(doc *analyze.Doc) []types.Tool {
	lex := lexicon.Default()
	var out []types.Tool
	for i := 0; i < doc.NumSentences(); i++ {
		sent := strings.ToLower(doc.SentenceText(i))
		for _, name := range lex.ToolNames() {
			if !containsWord(sent, name) {
				continue
			}
			context := types.ToolInUse
			switch {
			case containsAny(sent, "blocked", "can't use", "cannot use", "locked out"):
				context = types.ToolBlocked
			case containsAny(sent, "deprecated", "legacy", "moving off", "migrating off", "stopped using"):
				context = types.ToolDeprecated
			case containsAny(sent, "planning to", "will try", "want to use", "going to use", "thinking about"):
				context = types.ToolPlanned
			}
			out = append(out, types.Tool{Type: lex.ToolType(name), Name: name, Context: context})
		}
	}
	return out
}

// containsWord reports whether lowered text contains w on word
// boundaries ("go" must not hit "google").
func containsWord(lower, w string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], w)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(w)
		before := start == 0 || !isAlnumByte(lower[start-1])
		after := end >= len(lower) || !isAlnumByte(lower[end])
		if before && after {
			return true
		}
		idx = start + 1
	}
}

func isAlnumByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func validateTool(doc *analyze.Doc, t types.Tool) (types.Tool, bool) {
	name, ok := pipeline.Normalize(t.Name, pipeline.NormalizeRules{MinLen: 2, MaxLen: 40, Lower: true})
	if !ok {
		return t, false
	}
	switch t.Type {
	case types.ToolHardware, types.ToolSoftware, types.ToolService, types.ToolPlatform, types.ToolSecurity:
	default:
		t.Type = types.ToolSoftware
	}
	switch t.Context {
	case types.ToolInUse, types.ToolPlanned, types.ToolBlocked, types.ToolDeprecated:
	default:
		t.Context = types.ToolInUse
	}
	t.Name = name
	return t, true
}

// firstKnownTool returns the first lexicon tool name present in lowered
// text, preferring longer names.
func firstKnownTool(lower string, lex *lexicon.Lexicon) string {
	for _, name := range lex.ToolNames() {
		if containsWord(lower, name) {
			return name
		}
	}
	return ""
}

// ExtractTools returns tools and platforms mentioned in text.
func ExtractTools(text string) []types.Tool { return toolsTable.Extract(text) }

// ToolsFromDoc runs the tool table against a document.
func ToolsFromDoc(doc *analyze.Doc) []types.Tool { return toolsTable.Run(doc) }
