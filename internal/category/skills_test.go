package category

import (
	"testing"

	"github.com/fathomtext/fathom/pkg/types"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		skill string
		level string
	}{
		{"expert", "I'm an expert in distributed systems", "distributed systems", types.LevelExpert},
		{"great at", "I am great at technical writing", "technical writing", types.LevelExpert},
		{"good at", "I'm good at debugging", "debugging", types.LevelCompetent},
		{"know how", "I know how to tune queries", "tune queries", types.LevelCompetent},
		{"learning", "I'm learning Spanish", "spanish", types.LevelLearning},
		{"can verb", "I can write documentation", "write documentation", types.LevelCompetent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := ExtractSkills(tt.text)
			if len(skills) != 1 {
				t.Fatalf("got %d skills, want 1: %+v", len(skills), skills)
			}
			if skills[0].Name != tt.skill {
				t.Errorf("name = %q, want %q", skills[0].Name, tt.skill)
			}
			if skills[0].Level != tt.level {
				t.Errorf("level = %q, want %q", skills[0].Level, tt.level)
			}
		})
	}
}

func TestExtractSkillsWorkContext(t *testing.T) {
	skills := ExtractSkills("I'm good at debugging at work")
	if len(skills) != 1 {
		t.Fatalf("got %d skills, want 1: %+v", len(skills), skills)
	}
	if skills[0].Context != "work" {
		t.Errorf("context = %q, want work", skills[0].Context)
	}
}

func TestExtractSkillsIdentityOutranks(t *testing.T) {
	// "I am a photographer" states identity, not ability.
	if skills := ExtractSkills("I am a photographer"); len(skills) != 0 {
		t.Errorf("got %+v, want none", skills)
	}
}

func TestExtractSkillsKnownDomainScan(t *testing.T) {
	skills := ExtractSkills("After two years of practice I know enough photography to get by")
	if len(skills) != 1 {
		t.Fatalf("got %d skills, want 1: %+v", len(skills), skills)
	}
	if skills[0].Name != "photography" {
		t.Errorf("name = %q, want photography", skills[0].Name)
	}
}
