package analyze

import (
	"regexp"
	"strings"
	"unicode"
)

// Closed word classes for heuristic tagging. These are deliberately
// small: tags feed phrase patterns, they are not a full POS model.

var pronouns = map[string]bool{
	"i": true, "me": true, "my": true, "mine": true, "myself": true,
	"we": true, "us": true, "our": true, "ours": true,
	"you": true, "your": true, "yours": true,
	"he": true, "him": true, "his": true,
	"she": true, "her": true, "hers": true,
	"they": true, "them": true, "their": true, "theirs": true,
	"it": true, "its": true,
}

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "in": true, "on": true,
	"at": true, "for": true, "with": true, "to": true, "from": true,
	"by": true, "as": true, "and": true, "or": true, "but": true,
	"so": true, "if": true, "than": true, "then": true, "too": true,
	"very": true, "not": true, "no": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"am": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "can": true, "could": true, "should": true,
	"have": true, "has": true, "had": true, "that": true, "this": true,
	"these": true, "those": true, "there": true, "here": true,
}

var commonVerbs = map[string]bool{
	"want": true, "wants": true, "wanted": true,
	"need": true, "needs": true, "needed": true,
	"like": true, "likes": true, "liked": true,
	"love": true, "loves": true, "loved": true,
	"hate": true, "hates": true, "hated": true,
	"prefer": true, "prefers": true, "preferred": true,
	"use": true, "uses": true, "used": true, "using": true,
	"work": true, "works": true, "worked": true, "working": true,
	"learn": true, "learns": true, "learned": true, "learning": true,
	"build": true, "builds": true, "built": true, "building": true,
	"make": true, "makes": true, "made": true, "making": true,
	"go": true, "goes": true, "went": true, "going": true, "gone": true,
	"get": true, "gets": true, "got": true, "getting": true,
	"plan": true, "plans": true, "planned": true, "planning": true,
	"try": true, "tries": true, "tried": true, "trying": true,
	"start": true, "starts": true, "started": true, "starting": true,
	"finish": true, "finishes": true, "finished": true, "finishing": true,
	"know": true, "knows": true, "knew": true,
	"teach": true, "taught": true, "write": true, "wrote": true, "written": true,
	"run": true, "ran": true, "running": true,
	"fix": true, "fixed": true, "broke": true, "broken": true,
	"launch": true, "launched": true, "ship": true, "shipped": true,
	"move": true, "moved": true, "moving": true,
}

var commonAdjectives = map[string]bool{
	"good": true, "bad": true, "great": true, "terrible": true,
	"big": true, "small": true, "new": true, "old": true,
	"hard": true, "easy": true, "fast": true, "slow": true,
	"dark": true, "light": true, "free": true, "busy": true,
	"happy": true, "sad": true, "tired": true, "excited": true,
}

var adjectiveSuffixes = []string{
	"ful", "ous", "ive", "able", "ible", "less", "ish",
}

var dateWords = map[string]bool{
	"today": true, "tomorrow": true, "yesterday": true, "tonight": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"week": true, "month": true, "year": true, "weekend": true,
}

var isoDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// tagToken assigns heuristic class tags to a single token.
func tagToken(tok *Token) {
	lower := tok.Lower
	tok.Tags = TagWord

	if hasDigit(lower) {
		if strings.HasPrefix(lower, "$") || looksNumeric(lower) {
			tok.Tags |= TagValue
		}
		if isoDateRE.MatchString(lower) || looksLikeYear(lower) {
			tok.Tags |= TagDate
		}
		return
	}

	if pronouns[lower] {
		tok.Tags |= TagPronoun
		return
	}
	if stopwords[lower] {
		tok.Tags |= TagStop
		return
	}
	if dateWords[lower] {
		tok.Tags |= TagDate
	}
	if commonVerbs[lower] {
		tok.Tags |= TagVerb
	} else if strings.HasSuffix(lower, "ing") && len(lower) > 5 {
		tok.Tags |= TagVerb
	}
	if commonAdjectives[lower] {
		tok.Tags |= TagAdjective
	} else {
		for _, suf := range adjectiveSuffixes {
			if strings.HasSuffix(lower, suf) && len(lower) > len(suf)+2 {
				tok.Tags |= TagAdjective
				break
			}
		}
	}

	first, _ := firstRune(tok.Text)
	if unicode.IsUpper(first) {
		tok.Tags |= TagTitle
	}
	if tok.Tags&(TagVerb|TagAdjective|TagDate) == 0 {
		tok.Tags |= TagNoun
	}
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// looksNumeric accepts plain numbers plus money/quantity shorthands:
// "42", "3.5", "1,000", "$50", "10k", "1.5m", "80%".
func looksNumeric(s string) bool {
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSuffix(s, "k")
	s = strings.TrimSuffix(s, "m")
	s = strings.TrimSuffix(s, "b")
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}

func looksLikeYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	return s >= "1900" && s <= "2199" && looksNumeric(s)
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
