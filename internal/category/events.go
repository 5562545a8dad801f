package category

import (
	"strings"
	"time"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

// eventNouns gate the date-driven scan: a sentence with a date only
// becomes an event when it names one of these.
var eventNouns = []string{
	"meeting", "call", "appointment", "interview", "flight", "trip",
	"party", "conference", "wedding", "launch", "exam", "birthday",
	"demo", "review", "standup", "deadline", "concert", "vacation",
}

var eventsTable = pipeline.Table[types.Event]{
	Category: types.CategoryEvents,
	Strategies: []pipeline.Strategy[types.Event]{
		{
			Name:    "my_event_is",
			Pattern: "(my|the|our) (meeting|appointment|interview|flight|wedding|conference|launch|exam|demo|trip) is *",
			Base:    0.88,
			Parse:   parseNamedEvent,
		},
		{
			Name:    "attending",
			Pattern: "(i'm|i am) (attending|going) to *",
			Base:    0.80,
			Parse:   parseAttending,
		},
		{
			Name: "dated_sentence",
			Scan: scanDatedEvents,
			Base: 0.80,
		},
		{
			Name:     "event_noun_scan",
			Scan:     scanEventNouns,
			Base:     tierWeak,
			Fallback: true,
		},
	},
	Validate:       validateEvent,
	Key:            func(e types.Event) string { return truncKey(e.Name, 60) },
	Confidence:     func(e types.Event) float64 { return e.Confidence },
	WithConfidence: func(e types.Event, c float64) types.Event { e.Confidence = c; return e },
	Merge: func(kept, dup types.Event) types.Event {
		if dup.Details != nil {
			if kept.Details == nil {
				kept.Details = map[string]string{}
			}
			for k, v := range dup.Details {
				if _, ok := kept.Details[k]; !ok {
					kept.Details[k] = v
				}
			}
		}
		return kept
	},
}

func parseNamedEvent(doc *analyze.Doc, m analyze.Match) []types.Event {
	if m.IsQuestion() {
		return nil
	}
	name := m.Token(1).Lower
	when := m.Rest()
	return []types.Event{{
		Name:     name,
		Details:  map[string]string{"when": when},
		Temporal: temporalFor(doc, doc.Dates()),
	}}
}

// parseAttending rejects "going to <verb>" so future-tense verbs do not
// masquerade as events.
func parseAttending(doc *analyze.Doc, m analyze.Match) []types.Event {
	if m.IsQuestion() || m.RestLen() == 0 {
		return nil
	}
	first := m.RestTokens()[0]
	if first.Has(analyze.TagVerb) {
		return nil
	}
	return []types.Event{{
		Name:     m.Rest(),
		Temporal: types.Temporal{Tense: types.TenseFuture, Decay: types.DecayShort},
	}}
}

// scanDatedEvents turns sentences that pair a date expression with an
// event noun into events; the date text becomes the "when" detail.
func scanDatedEvents(doc *analyze.Doc) []types.Event {
	var out []types.Event
	for _, ref := range doc.Dates() {
		toks := doc.Tokens()
		if ref.StartTok < 0 || ref.StartTok >= len(toks) {
			continue
		}
		s := toks[ref.StartTok].Sentence
		sent := doc.SentenceText(s)
		lower := strings.ToLower(sent)
		if !containsAny(lower, eventNouns...) {
			continue
		}
		name := strings.TrimSpace(strings.Replace(sent, ref.Text, "", 1))
		out = append(out, types.Event{
			Name:     name,
			Details:  map[string]string{"when": ref.Text},
			Temporal: temporalForRef(doc.Now(), ref),
		})
	}
	return out
}

// scanEventNouns is the keyword fallback: a bare event noun with no
// date still signals an event, weakly.
func scanEventNouns(doc *analyze.Doc) []types.Event {
	lower := doc.Lower()
	var out []types.Event
	for _, noun := range eventNouns {
		if containsWord(lower, noun) {
			out = append(out, types.Event{
				Name:     noun,
				Temporal: types.Temporal{Tense: doc.GuessTense(), Decay: types.DecayMedium},
			})
		}
	}
	return out
}

func temporalFor(doc *analyze.Doc, refs []analyze.DateRef) types.Temporal {
	if len(refs) > 0 {
		return temporalForRef(doc.Now(), refs[0])
	}
	return types.Temporal{Tense: doc.GuessTense(), Decay: types.DecayMedium}
}

// temporalForRef derives tense from the date's position relative to the
// clock and decay from its distance: near dates fade fast.
func temporalForRef(now time.Time, ref analyze.DateRef) types.Temporal {
	dist := ref.At.Sub(now)
	if dist < 0 {
		dist = -dist
	}
	decay := types.DecayLong
	switch {
	case dist < 48*time.Hour:
		decay = types.DecayShort
	case dist < 30*24*time.Hour:
		decay = types.DecayMedium
	}
	return types.Temporal{Tense: ref.Tense(now), Decay: decay}
}

func validateEvent(doc *analyze.Doc, e types.Event) (types.Event, bool) {
	name, ok := pipeline.Normalize(e.Name, pipeline.NormalizeRules{MinLen: 3, MaxLen: 100})
	if !ok {
		return e, false
	}
	switch e.Temporal.Tense {
	case types.TensePast, types.TensePresent, types.TenseFuture:
	default:
		e.Temporal.Tense = types.TensePresent
	}
	switch e.Temporal.Decay {
	case types.DecayShort, types.DecayMedium, types.DecayLong:
	default:
		e.Temporal.Decay = types.DecayMedium
	}
	e.Name = name
	return e, true
}

// ExtractEvents returns events described in text.
func ExtractEvents(text string) []types.Event { return eventsTable.Extract(text) }

// EventsFromDoc runs the event table against a document.
func EventsFromDoc(doc *analyze.Doc) []types.Event { return eventsTable.Run(doc) }
