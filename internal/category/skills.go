package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/lexicon"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var skillsTable = pipeline.Table[types.Skill]{
	Category: types.CategorySkills,
	Strategies: []pipeline.Strategy[types.Skill]{
		{
			Name:    "expert_at",
			Pattern: "(i'm|i am) an expert (at|in|on) *",
			Base:    tierStrong,
			Parse:   parseSkillLevel(types.LevelExpert),
		},
		{
			Name:    "great_at",
			Pattern: "(i'm|i am) (great|excellent|amazing) (at|in|with) *",
			Base:    tierHigh,
			Parse:   parseSkillLevel(types.LevelExpert),
		},
		{
			Name:    "good_at",
			Pattern: "(i'm|i am) (good|decent|competent|skilled|proficient) (at|in|with) *",
			Base:    0.88,
			Parse:   parseSkillLevel(types.LevelCompetent),
		},
		{
			Name:    "know_how_to",
			Pattern: "i know how to *",
			Base:    tierHigh,
			Parse:   parseSkillLevel(types.LevelCompetent),
		},
		{
			Name:    "learning",
			Pattern: "(i'm|i am) learning *",
			Base:    tierHigh,
			Parse:   parseSkillLevel(types.LevelLearning),
		},
		{
			Name:    "i_can_verb",
			Pattern: "i can #Verb *",
			Base:    0.70,
			Parse: func(doc *analyze.Doc, m analyze.Match) []types.Skill {
				if m.IsQuestion() {
					return nil
				}
				return []types.Skill{{
					Name:  m.Token(2).Lower + " " + m.Rest(),
					Level: types.LevelCompetent,
				}}
			},
		},
		{
			Name:     "known_skill_scan",
			Scan:     scanKnownSkills,
			Base:     tierWeak,
			Fallback: true,
		},
	},
	Validate:       validateSkill,
	Key:            func(s types.Skill) string { return truncKey(s.Name, 60) },
	Confidence:     func(s types.Skill) float64 { return s.Confidence },
	WithConfidence: func(s types.Skill, c float64) types.Skill { s.Confidence = c; return s },
	Merge: func(kept, dup types.Skill) types.Skill {
		if kept.Context == "" {
			kept.Context = dup.Context
		}
		return kept
	},
}

func parseSkillLevel(level string) func(*analyze.Doc, analyze.Match) []types.Skill {
	return func(doc *analyze.Doc, m analyze.Match) []types.Skill {
		if m.IsQuestion() {
			return nil
		}
		skill := types.Skill{Name: m.Rest(), Level: level}
		if containsAny(strings.ToLower(m.SentenceText()), "at work", "professionally", "for work", "for a living") {
			skill.Context = "work"
		}
		return []types.Skill{skill}
	}
}

// scanKnownSkills finds lexicon skill domains in the text. Bare identity
// statements ("I am a programmer") are left to the identity extractor;
// the skill only counts with an ability indicator alongside it.
func scanKnownSkills(doc *analyze.Doc) []types.Skill {
	lower := doc.Lower()
	var out []types.Skill
	for _, name := range lexicon.Default().Skills {
		if !containsWord(lower, name) {
			continue
		}
		if strings.Contains(lower, "i am a "+name) || strings.Contains(lower, "i'm a "+name) {
			continue
		}
		if !containsAny(lower, "can ", "know", "skill", "good at", "years of", "experience with", "able to") {
			continue
		}
		level := types.LevelCompetent
		if containsAny(lower, "learning", "picking up", "started") {
			level = types.LevelLearning
		}
		out = append(out, types.Skill{Name: name, Level: level})
	}
	return out
}

func validateSkill(doc *analyze.Doc, s types.Skill) (types.Skill, bool) {
	name, ok := pipeline.Normalize(s.Name, pipeline.NormalizeRules{MinLen: 2, MaxLen: 80, Lower: true})
	if !ok {
		return s, false
	}
	// Identity outranks skill: "a photographer" names who someone is,
	// not what they can do.
	if strings.HasPrefix(name, "a ") || strings.HasPrefix(name, "an ") {
		return s, false
	}
	switch s.Level {
	case types.LevelLearning, types.LevelCompetent, types.LevelExpert:
	default:
		s.Level = types.LevelCompetent
	}
	s.Name = name
	return s, true
}

// ExtractSkills returns stated abilities found in text.
func ExtractSkills(text string) []types.Skill { return skillsTable.Extract(text) }

// SkillsFromDoc runs the skill table against a document.
func SkillsFromDoc(doc *analyze.Doc) []types.Skill { return skillsTable.Run(doc) }
