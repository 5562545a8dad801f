// Package lexicon loads the keyword and phrase dictionaries the category
// extractors match against. The tables ship embedded in the binary and
// are decoded once; callers treat the returned Lexicon as read-only.
package lexicon

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml
var dataFS embed.FS

// Lexicon holds every dictionary used across the extraction pipeline.
type Lexicon struct {
	Hedges      []string            `yaml:"hedges"`
	Blocklist   []string            `yaml:"blocklist"`
	Vague       []string            `yaml:"vague"`
	Tools       map[string][]string `yaml:"tools"`       // tool type -> names
	Skills      []string            `yaml:"skills"`
	Constraints map[string][]string `yaml:"constraints"` // constraint type -> triggers
	Warnings    map[string][]string `yaml:"warnings"`    // warning type -> triggers

	blockSet map[string]bool
	vagueSet map[string]bool
	toolType map[string]string // name -> type, longest-first order in ToolNames
	tools    []string          // names sorted longest first for greedy matching
}

var (
	once sync.Once
	def  *Lexicon
)

// Default returns the embedded lexicon, loading it on first use. Load
// failures of the embedded data are programmer errors and panic; the
// pipeline's per-stage isolation contains them if they ever occur.
func Default() *Lexicon {
	once.Do(func() {
		lex, err := load()
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded data unreadable: %v", err))
		}
		def = lex
	})
	return def
}

// SetDefault replaces the lexicon returned by Default. Call before any
// extraction starts; the pipeline reads the default without locking.
func SetDefault(lex *Lexicon) {
	if lex == nil {
		return
	}
	once.Do(func() {})
	def = lex
}

// Load reads a lexicon override file with the same schema as the
// embedded data. Used by the CLI's --lexicon flag.
func Load(path string) (*Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	return parse(raw)
}

func load() (*Lexicon, error) {
	raw, err := dataFS.ReadFile("data/lexicon.yaml")
	if err != nil {
		return nil, err
	}
	return parse(raw)
}

func parse(raw []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return nil, fmt.Errorf("parsing lexicon: %w", err)
	}
	lex.index()
	return &lex, nil
}

// index builds the lookup sets derived from the raw lists.
func (l *Lexicon) index() {
	l.blockSet = make(map[string]bool, len(l.Blocklist))
	for _, w := range l.Blocklist {
		l.blockSet[strings.ToLower(strings.TrimSpace(w))] = true
	}
	l.vagueSet = make(map[string]bool, len(l.Vague))
	for _, w := range l.Vague {
		l.vagueSet[strings.ToLower(strings.TrimSpace(w))] = true
	}
	l.toolType = make(map[string]string)
	l.tools = l.tools[:0]
	for typ, names := range l.Tools {
		for _, n := range names {
			n = strings.ToLower(strings.TrimSpace(n))
			if n == "" {
				continue
			}
			l.toolType[n] = typ
			l.tools = append(l.tools, n)
		}
	}
	// Longest first so "node.js" wins over "node", plus alphabetical for
	// a stable scan order.
	sort.Slice(l.tools, func(i, j int) bool {
		if len(l.tools[i]) != len(l.tools[j]) {
			return len(l.tools[i]) > len(l.tools[j])
		}
		return l.tools[i] < l.tools[j]
	})
}

// Blocked reports whether the cleaned value is a vacuous placeholder.
func (l *Lexicon) Blocked(value string) bool {
	return l.blockSet[strings.ToLower(strings.TrimSpace(value))]
}

// IsVague reports whether the value is on the vague-description list.
func (l *Lexicon) IsVague(value string) bool {
	return l.vagueSet[strings.ToLower(strings.TrimSpace(value))]
}

// ToolNames returns all known tool names, longest first.
func (l *Lexicon) ToolNames() []string {
	return l.tools
}

// ToolType returns the type for a known tool name, or "" if unknown.
func (l *Lexicon) ToolType(name string) string {
	return l.toolType[strings.ToLower(strings.TrimSpace(name))]
}

// HasHedge reports whether lowered text contains any hedge phrase.
func (l *Lexicon) HasHedge(lowered string) bool {
	for _, h := range l.Hedges {
		if containsPhrase(lowered, h) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether text contains phrase on word boundaries.
func containsPhrase(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if boundary(text, start-1) && boundary(text, end) {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func boundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9')
}
