package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var preferencesTable = pipeline.Table[types.Preference]{
	Category: types.CategoryPreferences,
	Strategies: []pipeline.Strategy[types.Preference]{
		{
			Name:    "i_prefer",
			Pattern: "i (prefer|love|like|enjoy) *",
			Base:    tierHigh,
			Parse:   parsePreferencePositive,
		},
		{
			Name:    "i_dislike",
			Pattern: "i (hate|dislike|despise|avoid) *",
			Base:    tierHigh,
			Parse:   parsePreferenceNegative,
		},
		{
			Name:    "cant_stand",
			Pattern: "i can't stand *",
			Base:    0.88,
			Parse:   parsePreferenceNegative,
		},
		{
			Name:    "not_a_fan",
			Pattern: "(i'm|i am) not a fan of *",
			Base:    tierModerate,
			Parse:   parsePreferenceNegative,
		},
		{
			Name:    "id_rather",
			Pattern: "i'd rather *",
			Base:    0.80,
			Parse:   parsePreferencePositive,
		},
		{
			Name:    "my_favorite",
			Pattern: "my (favorite|favourite) #Noun is *",
			Base:    0.88,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Preference {
				return []types.Preference{{
					Description: m.Rest(),
					Polarity:    types.PolarityPositive,
					Subject:     m.Token(2).Lower,
				}}
			},
		},
	},
	Validate:       validatePreference,
	Key:            func(p types.Preference) string { return truncKey(p.Description, 60) },
	Confidence:     func(p types.Preference) float64 { return p.Confidence },
	WithConfidence: func(p types.Preference, c float64) types.Preference { p.Confidence = c; return p },
	Merge: func(kept, dup types.Preference) types.Preference {
		if kept.Subject == "" {
			kept.Subject = dup.Subject
		}
		return kept
	},
}

func parsePreferencePositive(doc *analyze.Doc, m analyze.Match) []types.Preference {
	return parsePreference(m, types.PolarityPositive)
}

func parsePreferenceNegative(doc *analyze.Doc, m analyze.Match) []types.Preference {
	return parsePreference(m, types.PolarityNegative)
}

func parsePreference(m analyze.Match, polarity string) []types.Preference {
	if m.IsQuestion() {
		return nil
	}
	desc := m.Rest()
	// "X over Y" states a comparison; the preferred side is the subject.
	subject := desc
	if idx := strings.Index(strings.ToLower(desc), " over "); idx > 0 {
		subject = desc[:idx]
	}
	if len(subject) > 40 {
		subject = ""
	}
	return []types.Preference{{
		Description: desc,
		Polarity:    polarity,
		Subject:     strings.ToLower(strings.TrimSpace(subject)),
	}}
}

func validatePreference(doc *analyze.Doc, p types.Preference) (types.Preference, bool) {
	desc, ok := pipeline.Normalize(p.Description, pipeline.NormalizeRules{MinLen: 2, MaxLen: 150})
	if !ok {
		return p, false
	}
	// Goal phrasing outranks preference phrasing; leave "to become a
	// pilot" and friends to the goal extractor.
	lower := strings.ToLower(desc)
	if strings.HasPrefix(lower, "to be ") || strings.HasPrefix(lower, "to become ") {
		return p, false
	}
	if p.Polarity != types.PolarityPositive && p.Polarity != types.PolarityNegative {
		return p, false
	}
	p.Description = desc
	return p, true
}

// ExtractPreferences returns stated attitudes found in text.
func ExtractPreferences(text string) []types.Preference { return preferencesTable.Extract(text) }

// PreferencesFromDoc runs the preference table against a document.
func PreferencesFromDoc(doc *analyze.Doc) []types.Preference { return preferencesTable.Run(doc) }
