// Package fathom turns one free-form sentence or paragraph into typed,
// confidence-scored context records across thirteen fixed categories.
//
// The package is stateless and deterministic: the same input text always
// produces the same records (fix the clock with WithClock to pin the meta
// timestamp and date-relative classifications too). Extraction never
// returns an error and never panics; input that matches nothing yields a
// response whose category arrays are all empty.
//
//	resp := fathom.ExtractContext("I want to learn Go on my phone.")
//	// resp.Goals       -> [{learn Go on my phone ...}]
//	// resp.Constraints -> [{device ...}]
package fathom

import (
	"fmt"

	"github.com/fathomtext/fathom/internal/aggregate"
	"github.com/fathomtext/fathom/internal/category"
	"github.com/fathomtext/fathom/pkg/types"
)

// Version is the parser version reported in every response's meta block.
const Version = aggregate.ParserVersion

// ExtractContext runs every category extractor over text and returns the
// unified response. It never fails; unparseable input produces empty
// category arrays.
func ExtractContext(text string, opts ...Option) types.ContextResponse {
	return aggregate.Extract(text, buildOptions(opts))
}

// ExtractCategory runs a single category by name and returns its typed
// slice (e.g. []types.Goal for "goals"). The only error is an unknown
// category name.
func ExtractCategory(text, name string) (any, error) {
	switch name {
	case types.CategoryIdentity:
		return ExtractIdentity(text), nil
	case types.CategoryGoals:
		return ExtractGoals(text), nil
	case types.CategoryEvents:
		return ExtractEvents(text), nil
	case types.CategoryTools:
		return ExtractTools(text), nil
	case types.CategorySkills:
		return ExtractSkills(text), nil
	case types.CategoryJobs:
		return ExtractJobs(text), nil
	case types.CategoryPreferences:
		return ExtractPreferences(text), nil
	case types.CategoryExperiences:
		return ExtractExperiences(text), nil
	case types.CategoryFacts:
		return ExtractFacts(text), nil
	case types.CategoryResults:
		return ExtractResults(text), nil
	case types.CategoryIntents:
		return ExtractIntents(text), nil
	case types.CategoryConstraints:
		return ExtractConstraints(text), nil
	case types.CategoryWarnings:
		return ExtractWarnings(text), nil
	}
	return nil, fmt.Errorf("unknown category %q", name)
}

// ExtractIdentity extracts identity claims (name, role, origin, ...).
func ExtractIdentity(text string) []types.Identity {
	return nonNil(category.ExtractIdentity(text))
}

// ExtractGoals extracts stated objectives.
func ExtractGoals(text string) []types.Goal {
	return nonNil(category.ExtractGoals(text))
}

// ExtractEvents extracts named happenings with temporal classification.
func ExtractEvents(text string) []types.Event {
	return nonNil(category.ExtractEvents(text))
}

// ExtractTools extracts mentioned hardware, software, and services.
func ExtractTools(text string) []types.Tool {
	return nonNil(category.ExtractTools(text))
}

// ExtractSkills extracts stated abilities with proficiency levels.
func ExtractSkills(text string) []types.Skill {
	return nonNil(category.ExtractSkills(text))
}

// ExtractJobs extracts ongoing work items.
func ExtractJobs(text string) []types.Job {
	return nonNil(category.ExtractJobs(text))
}

// ExtractPreferences extracts likes and dislikes.
func ExtractPreferences(text string) []types.Preference {
	return nonNil(category.ExtractPreferences(text))
}

// ExtractExperiences extracts past experiences.
func ExtractExperiences(text string) []types.Experience {
	return nonNil(category.ExtractExperiences(text))
}

// ExtractFacts extracts declarative key/value statements.
func ExtractFacts(text string) []types.Fact {
	return nonNil(category.ExtractFacts(text))
}

// ExtractResults extracts causal action/outcome pairs.
func ExtractResults(text string) []types.Result {
	return nonNil(category.ExtractResults(text))
}

// ExtractIntents extracts what the writer wants from the exchange.
func ExtractIntents(text string) []types.Intent {
	return nonNil(category.ExtractIntents(text))
}

// ExtractConstraints extracts stated limitations.
func ExtractConstraints(text string) []types.Constraint {
	return nonNil(category.ExtractConstraints(text))
}

// ExtractWarnings extracts cautions the writer raises.
func ExtractWarnings(text string) []types.Warning {
	return nonNil(category.ExtractWarnings(text))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
