// Package types defines the data model for fathom extraction results.
//
// Every extracted item carries a Confidence in (0, 1]. The zero value of
// ContextResponse is not usable directly; use NewContextResponse so that
// all category arrays are present (and marshal as [] rather than null).
package types

import "time"

// Category names, in the fixed order they appear in a ContextResponse.
const (
	CategoryIdentity    = "identity"
	CategoryGoals       = "goals"
	CategoryEvents      = "events"
	CategoryTools       = "tools"
	CategorySkills      = "skills"
	CategoryJobs        = "jobs"
	CategoryPreferences = "preferences"
	CategoryExperiences = "experiences"
	CategoryFacts       = "facts"
	CategoryResults     = "results"
	CategoryIntents     = "intents"
	CategoryConstraints = "constraints"
	CategoryWarnings    = "warnings"
)

// Categories lists all category names in canonical order.
var Categories = []string{
	CategoryIdentity,
	CategoryGoals,
	CategoryEvents,
	CategoryTools,
	CategorySkills,
	CategoryJobs,
	CategoryPreferences,
	CategoryExperiences,
	CategoryFacts,
	CategoryResults,
	CategoryIntents,
	CategoryConstraints,
	CategoryWarnings,
}

// Goal horizons: expected time scale to completion.
const (
	HorizonShort  = "short"
	HorizonMedium = "medium"
	HorizonLong   = "long"
)

// Goal / job statuses.
const (
	StatusActive     = "active"
	StatusPaused     = "paused"
	StatusCompleting = "completing"
)

// Preference polarity.
const (
	PolarityPositive = "positive"
	PolarityNegative = "negative"
)

// Tool types.
const (
	ToolHardware = "hardware"
	ToolSoftware = "software"
	ToolService  = "service"
	ToolPlatform = "platform"
	ToolSecurity = "security"
)

// Tool usage contexts.
const (
	ToolInUse      = "in_use"
	ToolPlanned    = "planned"
	ToolBlocked    = "blocked"
	ToolDeprecated = "deprecated"
)

// Skill levels.
const (
	LevelLearning  = "learning"
	LevelCompetent = "competent"
	LevelExpert    = "expert"
)

// Event tenses.
const (
	TensePast    = "past"
	TensePresent = "present"
	TenseFuture  = "future"
)

// Event decay: how quickly the event's relevance fades.
const (
	DecayShort  = "short"
	DecayMedium = "medium"
	DecayLong   = "long"
)

// Sentiments for experiences and results.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Identity claims the writer makes about themselves.
type Identity struct {
	Type       string  `json:"type"` // name, role, trait, affiliation, demographic
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Goal is a stated objective with an expected horizon and status.
type Goal struct {
	Description string  `json:"description"`
	Horizon     string  `json:"horizon"` // short, medium, long
	Status      string  `json:"status"`  // active, paused, completing
	Confidence  float64 `json:"confidence"`
}

// Temporal describes when an event sits relative to the writing and how
// fast its relevance fades.
type Temporal struct {
	Tense string `json:"tense"` // past, present, future
	Decay string `json:"decay"` // short, medium, long
}

// Event is a named happening with optional structured details.
type Event struct {
	Name       string            `json:"name"`
	Details    map[string]string `json:"details,omitempty"`
	Temporal   Temporal          `json:"temporal"`
	Confidence float64           `json:"confidence"`
}

// Tool is a named piece of hardware/software/service the writer mentions.
type Tool struct {
	Type       string  `json:"type"`    // hardware, software, service, platform, security
	Name       string  `json:"name"`
	Context    string  `json:"context"` // in_use, planned, blocked, deprecated
	Confidence float64 `json:"confidence"`
}

// Skill is a stated ability with a rough proficiency level.
type Skill struct {
	Name       string  `json:"name"`
	Level      string  `json:"level"` // learning, competent, expert
	Context    string  `json:"context,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Job is ongoing work the writer is engaged in.
type Job struct {
	Description string  `json:"description"`
	Status      string  `json:"status"` // active, paused, completing
	Confidence  float64 `json:"confidence"`
}

// Preference is a stated attitude toward something.
type Preference struct {
	Description string  `json:"description"`
	Polarity    string  `json:"polarity"` // positive, negative
	Subject     string  `json:"subject,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Experience is something the writer went through.
type Experience struct {
	Description string  `json:"description"`
	Type        string  `json:"type"` // work, education, project, life
	Sentiment   string  `json:"sentiment"`
	Confidence  float64 `json:"confidence"`
}

// Fact is a declarative key/value statement.
type Fact struct {
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Result is a causal outcome the writer reports ("X happened, so Y").
type Result struct {
	Action     string  `json:"action"`
	Outcome    string  `json:"outcome"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// Intent is what the writer is trying to get from the exchange.
type Intent struct {
	Type       string  `json:"type"` // ask, request, share, explore, confirm
	Target     string  `json:"target,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Constraint is a stated limitation on the writer or their situation.
type Constraint struct {
	Type        string  `json:"type"` // device, time, budget, access, skill, policy
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// Warning is a caution the writer raises.
type Warning struct {
	Type       string  `json:"type"` // risk, blocker, deadline, security, health
	RelatedTo  string  `json:"related_to,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Meta carries run metadata attached to every response.
type Meta struct {
	Source        string    `json:"source"`
	ParserVersion string    `json:"parser_version"`
	Timestamp     time.Time `json:"timestamp"`
}

// ContextResponse is the unified result of an extraction run. All
// category arrays are present on every response, success or failure.
type ContextResponse struct {
	Identity    []Identity   `json:"identity"`
	Goals       []Goal       `json:"goals"`
	Events      []Event      `json:"events"`
	Tools       []Tool       `json:"tools"`
	Skills      []Skill      `json:"skills"`
	Jobs        []Job        `json:"jobs"`
	Preferences []Preference `json:"preferences"`
	Experiences []Experience `json:"experiences"`
	Facts       []Fact       `json:"facts"`
	Results     []Result     `json:"results"`
	Intents     []Intent     `json:"intents"`
	Constraints []Constraint `json:"constraints"`
	Warnings    []Warning    `json:"warnings"`
	Meta        Meta         `json:"meta"`
}

// NewContextResponse returns a response skeleton with every category
// array initialized to an empty, non-nil slice.
func NewContextResponse() ContextResponse {
	return ContextResponse{
		Identity:    []Identity{},
		Goals:       []Goal{},
		Events:      []Event{},
		Tools:       []Tool{},
		Skills:      []Skill{},
		Jobs:        []Job{},
		Preferences: []Preference{},
		Experiences: []Experience{},
		Facts:       []Fact{},
		Results:     []Result{},
		Intents:     []Intent{},
		Constraints: []Constraint{},
		Warnings:    []Warning{},
	}
}

// Count returns the total number of items across all categories.
func (r ContextResponse) Count() int {
	return len(r.Identity) + len(r.Goals) + len(r.Events) + len(r.Tools) +
		len(r.Skills) + len(r.Jobs) + len(r.Preferences) + len(r.Experiences) +
		len(r.Facts) + len(r.Results) + len(r.Intents) + len(r.Constraints) +
		len(r.Warnings)
}
