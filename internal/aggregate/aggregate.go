// Package aggregate fans one input text out to all thirteen category
// extractors and merges their results into a single ContextResponse.
// Each category runs isolated: a panic inside one contributes an empty
// array for that category and nothing else. The aggregator itself is
// guarded too — the caller always receives the full fixed-key skeleton.
package aggregate

import (
	"time"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/category"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

// ParserVersion identifies the rule set that produced a response.
const ParserVersion = "1.0.0"

// DefaultSource labels responses whose caller supplied no source.
const DefaultSource = "text"

// Options configure one extraction call.
type Options struct {
	// Source labels the response's meta block. Default "text".
	Source string
	// Now supplies the reference clock. Default time.Now. Fixing it
	// makes output fully deterministic, which the tests rely on.
	Now func() time.Time
}

// Category extractor hooks, swappable so tests can corrupt a single
// category and verify the others are untouched.
var (
	identityFn    = category.IdentityFromDoc
	goalsFn       = category.GoalsFromDoc
	eventsFn      = category.EventsFromDoc
	toolsFn       = category.ToolsFromDoc
	skillsFn      = category.SkillsFromDoc
	jobsFn        = category.JobsFromDoc
	preferencesFn = category.PreferencesFromDoc
	experiencesFn = category.ExperiencesFromDoc
	factsFn       = category.FactsFromDoc
	resultsFn     = category.ResultsFromDoc
	intentsFn     = category.IntentsFromDoc
	constraintsFn = category.ConstraintsFromDoc
	warningsFn    = category.WarningsFromDoc
)

// Extract runs the full pipeline. It never panics and always returns a
// response carrying every category key and a populated meta block.
func Extract(text string, opts Options) (resp types.ContextResponse) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	source := opts.Source
	if source == "" {
		source = DefaultSource
	}

	resp = types.NewContextResponse()
	resp.Meta = types.Meta{
		Source:        source,
		ParserVersion: ParserVersion,
		Timestamp:     now(),
	}

	defer func() {
		if r := recover(); r != nil {
			skeleton := types.NewContextResponse()
			skeleton.Meta = resp.Meta
			resp = skeleton
		}
	}()

	if text == "" {
		return resp
	}
	text = analyze.Truncate(text)

	var doc *analyze.Doc
	if opts.Now != nil {
		doc = analyze.ParseAt(text, now())
	} else {
		doc = analyze.Parse(text)
	}

	resp.Identity = run(doc, types.CategoryIdentity, identityFn)
	resp.Goals = run(doc, types.CategoryGoals, goalsFn)
	resp.Events = run(doc, types.CategoryEvents, eventsFn)
	resp.Tools = run(doc, types.CategoryTools, toolsFn)
	resp.Skills = run(doc, types.CategorySkills, skillsFn)
	resp.Jobs = run(doc, types.CategoryJobs, jobsFn)
	resp.Preferences = run(doc, types.CategoryPreferences, preferencesFn)
	resp.Experiences = run(doc, types.CategoryExperiences, experiencesFn)
	resp.Facts = run(doc, types.CategoryFacts, factsFn)
	resp.Results = run(doc, types.CategoryResults, resultsFn)
	resp.Intents = run(doc, types.CategoryIntents, intentsFn)
	resp.Constraints = run(doc, types.CategoryConstraints, constraintsFn)
	resp.Warnings = run(doc, types.CategoryWarnings, warningsFn)
	return resp
}

// run executes one category extractor behind a recover boundary and
// normalizes its result to a non-nil slice.
func run[T any](doc *analyze.Doc, name string, fn func(*analyze.Doc) []T) (out []T) {
	defer func() {
		if r := recover(); r != nil {
			pipeline.Warnf("category %s: recovered: %v", name, r)
			out = []T{}
		}
	}()
	out = fn(doc)
	if out == nil {
		out = []T{}
	}
	return out
}
