package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

// occupationWords anchor the "(i'm|i am) a ..." strategy: without a
// recognizable occupation the phrase stays unclaimed rather than
// guessing at a role.
var occupationWords = []string{
	"developer", "engineer", "designer", "teacher", "doctor", "nurse",
	"student", "manager", "writer", "founder", "researcher", "lawyer",
	"accountant", "photographer", "programmer", "consultant", "analyst",
	"scientist", "architect", "chef", "musician", "artist", "freelancer",
}

var occupationSuffixes = []string{"er", "or", "ist", "ian", "eer"}

var identityTable = pipeline.Table[types.Identity]{
	Category: types.CategoryIdentity,
	Strategies: []pipeline.Strategy[types.Identity]{
		{
			Name:    "my_name_is",
			Pattern: "my name is *",
			Base:    0.97,
			Parse:   parseIdentity("name"),
		},
		{
			Name:    "call_me",
			Pattern: "[you] [can] call me *",
			Base:    0.92,
			Parse:   parseIdentity("name"),
		},
		{
			Name:    "i_am_a",
			Pattern: "(i'm|i am) (a|an) *",
			Base:    tierHigh,
			Parse:   parseRole,
		},
		{
			Name:    "work_as",
			Pattern: "i work as [a] [an] *",
			Base:    0.93,
			Parse:   parseIdentity("role"),
		},
		{
			Name:    "years_old",
			Pattern: "(i'm|i am) #Value years old",
			Base:    tierStrong,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Identity {
				// The value token's position shifts with the matched
				// alternative ("i'm" vs "i am"), so locate it by tag.
				for i := 0; i < m.Len(); i++ {
					if tok := m.Token(i); tok.Has(analyze.TagValue) {
						return []types.Identity{{Type: "demographic", Value: tok.Text + " years old"}}
					}
				}
				return nil
			},
		},
		{
			Name:    "im_from",
			Pattern: "(i'm|i am) [originally] from *",
			Base:    0.88,
			Parse:   parseIdentity("origin"),
		},
	},
	Validate:       validateIdentity,
	Key:            func(i types.Identity) string { return i.Type + ":" + truncKey(i.Value, 60) },
	Confidence:     func(i types.Identity) float64 { return i.Confidence },
	WithConfidence: func(i types.Identity, c float64) types.Identity { i.Confidence = c; return i },
}

func parseIdentity(typ string) func(*analyze.Doc, analyze.Match) []types.Identity {
	return func(doc *analyze.Doc, m analyze.Match) []types.Identity {
		if m.IsQuestion() {
			return nil
		}
		return []types.Identity{{Type: typ, Value: m.Rest()}}
	}
}

// parseRole keeps "(i'm|i am) a X" only when X reads as an occupation.
func parseRole(doc *analyze.Doc, m analyze.Match) []types.Identity {
	if m.IsQuestion() {
		return nil
	}
	value := m.Rest()
	lower := strings.ToLower(value)
	first := strings.Fields(lower)
	if len(first) == 0 {
		return nil
	}
	if !isOccupation(first[0]) && !isOccupation(first[len(first)-1]) {
		return nil
	}
	return []types.Identity{{Type: "role", Value: value}}
}

func isOccupation(word string) bool {
	for _, w := range occupationWords {
		if word == w {
			return true
		}
	}
	for _, suf := range occupationSuffixes {
		if strings.HasSuffix(word, suf) && len(word) > len(suf)+3 {
			return true
		}
	}
	return false
}

func validateIdentity(doc *analyze.Doc, id types.Identity) (types.Identity, bool) {
	if id.Type == "" {
		return id, false
	}
	value, ok := pipeline.Normalize(id.Value, pipeline.NormalizeRules{MinLen: 2, MaxLen: 80})
	if !ok {
		return id, false
	}
	id.Value = value
	return id, true
}

// ExtractIdentity returns identity claims found in text.
func ExtractIdentity(text string) []types.Identity { return identityTable.Extract(text) }

// IdentityFromDoc runs the identity table against a document.
func IdentityFromDoc(doc *analyze.Doc) []types.Identity { return identityTable.Run(doc) }
