package analyze

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Phrase patterns are space-separated elements matched against tagged
// tokens within a single sentence:
//
//	literal        matches a token by lowercased text ("i'm", "to")
//	(a|b|c)        matches any one of the alternatives; an alternative
//	               may span several words ("i am"), consuming one token
//	               per word
//	[literal]      optionally matches a literal
//	[(a|b)]        optionally matches one of the alternatives
//	#Tag           matches one token carrying the tag (#Value, #Date,
//	               #Title, #Noun, #Verb, #Adjective, #Pronoun, #Word)
//	*              captures the remaining tokens of the sentence; must be
//	               the final element and must capture at least one token
type patternElem struct {
	alts     [][]string // nil for tag/rest elements; longest first
	tag      Tag
	optional bool
	rest     bool
}

type pattern struct {
	elems []patternElem
}

var tagNames = map[string]Tag{
	"Word":      TagWord,
	"Value":     TagValue,
	"Date":      TagDate,
	"Title":     TagTitle,
	"Pronoun":   TagPronoun,
	"Verb":      TagVerb,
	"Adjective": TagAdjective,
	"Noun":      TagNoun,
}

var (
	patMu    sync.RWMutex
	patCache = map[string]*pattern{}
)

// compile parses a pattern string, caching the result per process.
func compile(src string) (*pattern, error) {
	patMu.RLock()
	p, ok := patCache[src]
	patMu.RUnlock()
	if ok {
		return p, nil
	}

	fields := splitElems(src)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}
	p = &pattern{}
	for i, f := range fields {
		elem, err := compileElem(f)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", src, err)
		}
		if elem.rest && i != len(fields)-1 {
			return nil, fmt.Errorf("pattern %q: * must be final", src)
		}
		p.elems = append(p.elems, elem)
	}

	patMu.Lock()
	patCache[src] = p
	patMu.Unlock()
	return p, nil
}

// splitElems splits a pattern source on whitespace, keeping bracketed
// and parenthesized groups intact so alternatives may contain spaces.
func splitElems(src string) []string {
	var elems []string
	var b strings.Builder
	depth := 0
	for _, r := range src {
		switch {
		case r == '(' || r == '[':
			depth++
			b.WriteRune(r)
		case r == ')' || r == ']':
			depth--
			b.WriteRune(r)
		case unicode.IsSpace(r) && depth <= 0:
			if b.Len() > 0 {
				elems = append(elems, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		elems = append(elems, b.String())
	}
	return elems
}

func compileElem(f string) (patternElem, error) {
	var elem patternElem
	if f == "*" {
		elem.rest = true
		return elem, nil
	}
	if strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]") {
		inner, err := compileElem(f[1 : len(f)-1])
		if err != nil {
			return elem, err
		}
		inner.optional = true
		return inner, nil
	}
	if strings.HasPrefix(f, "#") {
		tag, ok := tagNames[f[1:]]
		if !ok {
			return elem, fmt.Errorf("unknown tag %q", f)
		}
		elem.tag = tag
		return elem, nil
	}
	if strings.HasPrefix(f, "(") && strings.HasSuffix(f, ")") {
		for _, a := range strings.Split(f[1:len(f)-1], "|") {
			words := strings.Fields(normalizeLower(a))
			if len(words) == 0 {
				return elem, fmt.Errorf("empty alternative in %q", f)
			}
			elem.alts = append(elem.alts, words)
		}
		// Longer alternatives first, so "i am" wins over a bare "i"
		// prefix when both are listed.
		sort.SliceStable(elem.alts, func(i, j int) bool {
			return len(elem.alts[i]) > len(elem.alts[j])
		})
		return elem, nil
	}
	elem.alts = [][]string{{normalizeLower(f)}}
	return elem, nil
}

// FindAll returns every non-overlapping match of the pattern, scanning
// sentences left to right. A malformed pattern yields no matches.
func (d *Doc) FindAll(src string) []Match {
	p, err := compile(src)
	if err != nil {
		return nil
	}
	var matches []Match
	for _, s := range d.sents {
		pos := s.start
		for pos < s.end {
			m, next, ok := d.matchAt(p, pos, s.end)
			if !ok {
				pos++
				continue
			}
			matches = append(matches, m)
			pos = next
		}
	}
	return matches
}

// Find returns the first match, if any.
func (d *Doc) Find(src string) (Match, bool) {
	ms := d.FindAll(src)
	if len(ms) == 0 {
		return Match{}, false
	}
	return ms[0], true
}

// matchAt attempts a match starting at token index pos, bounded by the
// sentence end. Returns the match and the index after it.
func (d *Doc) matchAt(p *pattern, pos, end int) (Match, int, bool) {
	m := Match{doc: d}
	i := pos
	for _, elem := range p.elems {
		if elem.rest {
			if i >= end {
				return Match{}, 0, false
			}
			for ; i < end; i++ {
				m.toks = append(m.toks, i)
				m.rest = append(m.rest, i)
			}
			return m, i, true
		}
		if n, ok := d.elemConsume(elem, i, end); ok {
			for j := 0; j < n; j++ {
				m.toks = append(m.toks, i+j)
			}
			i += n
			continue
		}
		if elem.optional {
			continue
		}
		return Match{}, 0, false
	}
	return m, i, true
}

// elemConsume reports how many tokens starting at i the element matches.
// A multi-word alternative consumes one token per word.
func (d *Doc) elemConsume(elem patternElem, i, end int) (int, bool) {
	if elem.tag != 0 {
		if i < end && d.tokens[i].Has(elem.tag) {
			return 1, true
		}
		return 0, false
	}
	for _, alt := range elem.alts {
		if i+len(alt) > end {
			continue
		}
		ok := true
		for j, w := range alt {
			if d.tokens[i+j].Lower != w {
				ok = false
				break
			}
		}
		if ok {
			return len(alt), true
		}
	}
	return 0, false
}
