package pipeline

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		rules  NormalizeRules
		want   string
		wantOK bool
	}{
		{"plain", "learn Go", NormalizeRules{}, "learn Go", true},
		{"trims space", "  learn Go  ", NormalizeRules{}, "learn Go", true},
		{"strips quotes", `"dark mode"`, NormalizeRules{}, "dark mode", true},
		{"strips curly quotes", "“dark mode”", NormalizeRules{}, "dark mode", true},
		{"strips trailing punctuation", "ship the app!", NormalizeRules{}, "ship the app", true},
		{"collapses whitespace", "ship   the\tapp", NormalizeRules{}, "ship the app", true},
		{"lowercases when asked", "Dark Mode", NormalizeRules{Lower: true}, "dark mode", true},
		{"too short", "ab", NormalizeRules{}, "", false},
		{"min override", "ab", NormalizeRules{MinLen: 2}, "ab", true},
		{"too long", string(make([]byte, 200)), NormalizeRules{}, "", false},
		{"blocklisted", "things", NormalizeRules{}, "", false},
		{"blocklisted after cleaning", `"it"`, NormalizeRules{MinLen: 2}, "", false},
		{"no alpha run", "1 2 3", NormalizeRules{}, "", false},
		{"empty", "   ", NormalizeRules{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, tt.rules)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
