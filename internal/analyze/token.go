package analyze

import (
	"strings"
	"unicode"
)

// Tag is a bitmask of heuristic token classes.
type Tag uint16

const (
	TagWord Tag = 1 << iota
	TagValue
	TagDate
	TagTitle
	TagPronoun
	TagVerb
	TagAdjective
	TagNoun
	TagStop
)

// Token is a single word-level unit with its source position and tags.
type Token struct {
	Text     string
	Lower    string
	Start    int // byte offset in source text
	End      int
	Tags     Tag
	Sentence int
}

// Has reports whether the token carries the given tag.
func (t Token) Has(tag Tag) bool { return t.Tags&tag != 0 }

// sentence is a half-open token range [start, end) plus its terminator.
type sentence struct {
	start, end int
	term       rune // '.', '!', '?', or 0 for none
}

// isWordRune reports whether r can start or continue a token.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isJoinRune reports whether r may appear inside a token when flanked by
// word runes ("don't", "node.js", "3.5", "long-term", "ci/cd").
func isJoinRune(r rune) bool {
	switch r {
	case '\'', '’', '.', '-', '_', '/', '+', ',':
		return true
	}
	return false
}

// tokenize splits text into tokens and sentences. Sentence boundaries
// are '.', '!', '?' and newlines.
func tokenize(text string) ([]Token, []sentence) {
	var tokens []Token
	var sents []sentence
	runes := []rune(text)

	sentStart := 0
	closeSentence := func(term rune) {
		if len(tokens) > sentStart {
			sents = append(sents, sentence{start: sentStart, end: len(tokens), term: term})
			sentStart = len(tokens)
		}
	}

	byteOff := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		size := len(string(r))
		if isWordRune(r) || (r == '$' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			start := byteOff
			var b strings.Builder
			for i < len(runes) {
				r = runes[i]
				if isWordRune(r) || r == '$' && b.Len() == 0 {
					b.WriteRune(r)
					byteOff += len(string(r))
					i++
					continue
				}
				if isJoinRune(r) && b.Len() > 0 && i+1 < len(runes) && isWordRune(runes[i+1]) {
					b.WriteRune(r)
					byteOff += len(string(r))
					i++
					continue
				}
				break
			}
			word := b.String()
			tokens = append(tokens, Token{
				Text:     word,
				Lower:    normalizeLower(word),
				Start:    start,
				End:      byteOff,
				Sentence: len(sents),
			})
			continue
		}
		switch r {
		case '.', '!', '?':
			closeSentence(r)
		case '\n':
			closeSentence(0)
		}
		byteOff += size
		i++
	}
	closeSentence(0)
	return tokens, sents
}

// normalizeLower lowercases and folds curly apostrophes so pattern
// literals like "i'm" match both quote styles.
func normalizeLower(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "’", "'")
}
