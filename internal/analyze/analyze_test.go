package analyze

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestTokenizeKeepsJoinedTokens(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"I don't know", []string{"I", "don't", "know"}},
		{"we use node.js daily", []string{"we", "use", "node.js", "daily"}},
		{"it costs $50 total", []string{"it", "costs", "$50", "total"}},
		{"a long-term plan", []string{"a", "long-term", "plan"}},
		{"version 3.5 shipped", []string{"version", "3.5", "shipped"}},
	}
	for _, tt := range tests {
		toks, _ := tokenize(tt.text)
		if len(toks) != len(tt.want) {
			t.Errorf("tokenize(%q): got %d tokens, want %d", tt.text, len(toks), len(tt.want))
			continue
		}
		for i, w := range tt.want {
			if toks[i].Text != w {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.text, i, toks[i].Text, w)
			}
		}
	}
}

func TestTokenizeCurlyApostrophe(t *testing.T) {
	toks, _ := tokenize("I’m here")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Lower != "i'm" {
		t.Errorf("Lower = %q, want i'm", toks[0].Lower)
	}
}

func TestSentenceSplitting(t *testing.T) {
	doc := ParseAt("I like Go. Do you? Great!", fixedNow)
	if doc.NumSentences() != 3 {
		t.Fatalf("NumSentences = %d, want 3", doc.NumSentences())
	}
	if got := doc.SentenceText(1); got != "Do you" {
		t.Errorf("SentenceText(1) = %q, want %q", got, "Do you")
	}
	if !doc.HasQuestion() {
		t.Error("HasQuestion() = false, want true")
	}
}

func TestIsQuestionPerSentence(t *testing.T) {
	doc := ParseAt("I want to learn. Can you help?", fixedNow)
	if doc.IsQuestion(0) {
		t.Error("first sentence flagged as question")
	}
	last := doc.Len() - 1
	if !doc.IsQuestion(last) {
		t.Error("second sentence not flagged as question")
	}
}

func TestTagToken(t *testing.T) {
	tests := []struct {
		text string
		tag  Tag
	}{
		{"i", TagPronoun},
		{"the", TagStop},
		{"want", TagVerb},
		{"swimming", TagVerb},
		{"good", TagAdjective},
		{"meeting", TagVerb}, // -ing heuristic
		{"goal", TagNoun},
		{"42", TagValue},
		{"$50", TagValue},
		{"10k", TagValue},
		{"2025-06-15", TagDate},
		{"tomorrow", TagDate},
		{"1998", TagDate},
	}
	for _, tt := range tests {
		tok := Token{Text: tt.text, Lower: strings.ToLower(tt.text)}
		tagToken(&tok)
		if !tok.Has(tt.tag) {
			t.Errorf("tagToken(%q): missing tag %b, got %b", tt.text, tt.tag, tok.Tags)
		}
	}
}

func TestTitleTag(t *testing.T) {
	tok := Token{Text: "Alex", Lower: "alex"}
	tagToken(&tok)
	if !tok.Has(TagTitle) {
		t.Error("capitalized word missing TagTitle")
	}
	tok = Token{Text: "alex", Lower: "alex"}
	tagToken(&tok)
	if tok.Has(TagTitle) {
		t.Error("lowercase word carries TagTitle")
	}
}

func TestFindAllLiteralAndAlternation(t *testing.T) {
	doc := ParseAt("I want to learn Go. I need to sleep.", fixedNow)
	ms := doc.FindAll("i (want|need) to *")
	if len(ms) != 2 {
		t.Fatalf("got %d matches, want 2", len(ms))
	}
	if got := ms[0].Rest(); got != "learn Go" {
		t.Errorf("first rest = %q, want %q", got, "learn Go")
	}
	if got := ms[1].Rest(); got != "sleep" {
		t.Errorf("second rest = %q, want %q", got, "sleep")
	}
}

func TestFindAllOptionalElement(t *testing.T) {
	doc := ParseAt("My goal is to ship the app", fixedNow)
	m, ok := doc.Find("my goal is [to] *")
	if !ok {
		t.Fatal("no match with optional consumed")
	}
	if got := m.Rest(); got != "ship the app" {
		t.Errorf("rest = %q, want %q", got, "ship the app")
	}

	doc = ParseAt("My goal is world peace", fixedNow)
	m, ok = doc.Find("my goal is [to] *")
	if !ok {
		t.Fatal("no match with optional skipped")
	}
	if got := m.Rest(); got != "world peace" {
		t.Errorf("rest = %q, want %q", got, "world peace")
	}
}

func TestFindAllTagElement(t *testing.T) {
	doc := ParseAt("I'm 28 years old", fixedNow)
	m, ok := doc.Find("(i'm|i am) #Value years old")
	if !ok {
		t.Fatal("no match")
	}
	if got := m.Token(1).Text; got != "28" {
		t.Errorf("value token = %q, want 28", got)
	}
}

func TestFindAllMultiWordAlternative(t *testing.T) {
	// An alternative with a space matches consecutive tokens, so the
	// contracted and expanded forms hit the same pattern.
	for _, text := range []string{"I'm on my phone", "I am on my phone"} {
		doc := ParseAt(text, fixedNow)
		if _, ok := doc.Find("(i'm|i am) on [my] [a] (mobile|phone|tablet|ipad)"); !ok {
			t.Errorf("no match in %q", text)
		}
	}
}

func TestMultiWordAlternativeWithRest(t *testing.T) {
	for _, text := range []string{"I'm learning Docker", "I am learning Docker"} {
		doc := ParseAt(text, fixedNow)
		m, ok := doc.Find("(i'm|i am) learning *")
		if !ok {
			t.Fatalf("no match in %q", text)
		}
		if got := m.Rest(); got != "Docker" {
			t.Errorf("rest = %q, want %q", got, "Docker")
		}
	}
}

func TestLongerAlternativeWins(t *testing.T) {
	// "i am" must be tried before its "i" prefix or the following
	// literal can never line up.
	doc := ParseAt("I am happy", fixedNow)
	m, ok := doc.Find("(i|i am) happy")
	if !ok {
		t.Fatal("no match")
	}
	if m.Len() != 3 {
		t.Errorf("match len = %d, want 3", m.Len())
	}
}

func TestPatternStaysInsideSentence(t *testing.T) {
	// The rest capture must not bleed into the next sentence.
	doc := ParseAt("I want to rest. Tomorrow is busy.", fixedNow)
	m, ok := doc.Find("i want to *")
	if !ok {
		t.Fatal("no match")
	}
	if got := m.Rest(); got != "rest" {
		t.Errorf("rest = %q, want %q", got, "rest")
	}
}

func TestRestRequiresToken(t *testing.T) {
	doc := ParseAt("I want to", fixedNow)
	if _, ok := doc.Find("i want to *"); ok {
		t.Error("matched with empty rest capture")
	}
}

func TestMalformedPatternYieldsNothing(t *testing.T) {
	doc := ParseAt("hello world", fixedNow)
	if ms := doc.FindAll("#Bogus *"); ms != nil {
		t.Errorf("malformed pattern returned %d matches", len(ms))
	}
}

func TestMatchRemove(t *testing.T) {
	doc := ParseAt("I want to learn Go", fixedNow)
	m, ok := doc.Find("i want to *")
	if !ok {
		t.Fatal("no match")
	}
	got := m.Remove("i want to").Text()
	if got != "learn Go" {
		t.Errorf("after Remove = %q, want %q", got, "learn Go")
	}
	// Original untouched.
	if m.Text() != "I want to learn Go" {
		t.Errorf("original mutated: %q", m.Text())
	}
}

func TestMatchValues(t *testing.T) {
	doc := ParseAt("I have $1.5k and 3 kids", fixedNow)
	m, ok := doc.Find("i have #Value *")
	if !ok {
		t.Fatal("no match")
	}
	vals := m.Values()
	if len(vals) != 2 {
		t.Fatalf("got %d values, want 2", len(vals))
	}
	if vals[0] != 1500 {
		t.Errorf("vals[0] = %v, want 1500", vals[0])
	}
	if vals[1] != 3 {
		t.Errorf("vals[1] = %v, want 3", vals[1])
	}
}

func TestDateDetection(t *testing.T) {
	doc := ParseAt("The meeting is tomorrow at 3pm", fixedNow)
	dates := doc.Dates()
	if len(dates) == 0 {
		t.Fatal("no date found for 'tomorrow at 3pm'")
	}
	if got := dates[0].Tense(fixedNow); got != "future" {
		t.Errorf("tense = %q, want future", got)
	}
}

func TestDateRefPastTense(t *testing.T) {
	doc := ParseAt("The launch was yesterday", fixedNow)
	dates := doc.Dates()
	if len(dates) == 0 {
		t.Fatal("no date found for 'yesterday'")
	}
	if got := dates[0].Tense(fixedNow); got != "past" {
		t.Errorf("tense = %q, want past", got)
	}
}

func TestGuessTense(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I will ship it", "future"},
		{"The demo went badly", "past"},
		{"I enjoy hiking", "present"},
	}
	for _, tt := range tests {
		doc := ParseAt(tt.text, fixedNow)
		if got := doc.GuessTense(); got != tt.want {
			t.Errorf("GuessTense(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestParseAtDeterministic(t *testing.T) {
	text := "My name is Alex. The meeting is tomorrow."
	a := ParseAt(text, fixedNow)
	b := ParseAt(text, fixedNow)
	if a.Len() != b.Len() || a.NumSentences() != b.NumSentences() {
		t.Fatal("repeated parses differ structurally")
	}
	if len(a.Dates()) != len(b.Dates()) {
		t.Fatal("repeated parses found different dates")
	}
	for i := range a.Dates() {
		if !a.Dates()[i].At.Equal(b.Dates()[i].At) {
			t.Errorf("date %d differs between parses", i)
		}
	}
}

func TestParseEmptyAndWhitespace(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		doc := ParseAt(text, fixedNow)
		if doc.Len() != 0 {
			t.Errorf("ParseAt(%q).Len() = %d, want 0", text, doc.Len())
		}
	}
}

func TestParseTruncatesLongInput(t *testing.T) {
	text := strings.Repeat("a", MaxInputLength+1000)
	doc := ParseAt(text, fixedNow)
	if len(doc.Text()) != MaxInputLength {
		t.Errorf("text length = %d, want %d", len(doc.Text()), MaxInputLength)
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	// Place a multi-byte rune across the cut point; truncation must back
	// off to the rune boundary rather than leave a broken sequence.
	text := strings.Repeat("a", MaxInputLength-1) + "éllo"
	got := Truncate(text)
	if len(got) > MaxInputLength {
		t.Errorf("length = %d, want <= %d", len(got), MaxInputLength)
	}
	if !utf8.ValidString(got) {
		t.Error("truncated text is not valid UTF-8")
	}
}

func TestParseCacheReturnsSameDoc(t *testing.T) {
	text := "cache me once"
	a := Parse(text)
	b := Parse(text)
	if a != b {
		t.Error("cached parse returned a different document")
	}
}
