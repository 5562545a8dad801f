package category

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/lexicon"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var factsTable = pipeline.Table[types.Fact]{
	Category: types.CategoryFacts,
	Strategies: []pipeline.Strategy[types.Fact]{
		{
			Name:    "my_noun_is",
			Pattern: "my #Noun is *",
			Base:    tierHigh,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Fact {
				return []types.Fact{{Key: m.Token(1).Lower, Value: m.Rest()}}
			},
		},
		{
			Name:    "i_live_in",
			Pattern: "i live in *",
			Base:    0.92,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Fact {
				return []types.Fact{{Key: "location", Value: m.Rest()}}
			},
		},
		{
			Name:    "i_work_at",
			Pattern: "i work (at|for) *",
			Base:    tierModerate,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Fact {
				return []types.Fact{{Key: "employer", Value: m.Rest()}}
			},
		},
		{
			Name:    "i_have_n",
			Pattern: "i have #Value *",
			Base:    0.80,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Fact {
				return []types.Fact{{Key: m.Rest(), Value: m.Token(2).Text}}
			},
		},
		{
			Name: "kv_line",
			Scan: scanKVLines,
			Base: tierHigh,
		},
		{
			Name:     "title_is",
			Pattern:  "#Title is *",
			Base:     tierWeak,
			Fallback: true,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Fact {
				return []types.Fact{{Key: m.Token(0).Lower, Value: m.Rest()}}
			},
		},
	},
	Validate:       validateFact,
	Key:            func(f types.Fact) string { return truncKey(f.Key, 60) },
	Confidence:     func(f types.Fact) float64 { return f.Confidence },
	WithConfidence: func(f types.Fact, c float64) types.Fact { f.Confidence = c; return f },
}

// kvLineRE matches explicit "Key: Value" lines.
var kvLineRE = regexp.MustCompile(`(?m)^\s*([^:\n]{2,60}):\s+(.+)$`)

// scanKVLines extracts facts from structured key/value lines.
func scanKVLines(doc *analyze.Doc) []types.Fact {
	var out []types.Fact
	for _, m := range kvLineRE.FindAllStringSubmatch(doc.Text(), -1) {
		key := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		if strings.Count(key, " ") > 6 || strings.ContainsAny(key, "{}|") {
			continue
		}
		out = append(out, types.Fact{Key: key, Value: value})
	}
	return out
}

// factKeyRejects are keys owned by higher-precedence categories; a
// "my goal is ..." line belongs to goals, not facts.
var factKeyRejects = map[string]bool{
	"goal": true, "objective": true, "aim": true, "dream": true,
	"ambition": true, "name": true, "job": true, "task": true,
}

func validateFact(doc *analyze.Doc, f types.Fact) (types.Fact, bool) {
	key, ok := pipeline.Normalize(f.Key, pipeline.NormalizeRules{MinLen: 2, MaxLen: 60, Lower: true})
	if !ok {
		return f, false
	}
	if factKeyRejects[key] {
		return f, false
	}
	value := strings.TrimSpace(strings.Trim(f.Value, "\"'`“”‘’"))
	value = strings.TrimRight(value, ".!?;: ")
	if value == "" || len(value) > 200 {
		return f, false
	}
	// Values may be purely numeric ("kids: 3"); anything else needs an
	// alphabetic run like every other category.
	if !hasLetterRun(value) && !hasDigitRun(value) {
		return f, false
	}
	if lexicon.Default().Blocked(value) {
		return f, false
	}
	f.Key, f.Value = key, value
	return f, true
}

func hasLetterRun(s string) bool {
	run := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			run++
			if run >= 2 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func hasDigitRun(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ExtractFacts returns key/value facts stated in text.
func ExtractFacts(text string) []types.Fact { return factsTable.Extract(text) }

// FactsFromDoc runs the fact table against an analyzed document.
func FactsFromDoc(doc *analyze.Doc) []types.Fact { return factsTable.Run(doc) }
