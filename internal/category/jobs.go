package category

import (
	"strings"

	"github.com/fathomtext/fathom/internal/analyze"
	"github.com/fathomtext/fathom/internal/pipeline"
	"github.com/fathomtext/fathom/pkg/types"
)

var jobsTable = pipeline.Table[types.Job]{
	Category: types.CategoryJobs,
	Strategies: []pipeline.Strategy[types.Job]{
		{
			Name:    "working_on",
			Pattern: "(i'm|i am|we're|we are) [currently] working on *",
			Base:    tierHigh,
			Parse:   parseJobStatus(types.StatusActive),
		},
		{
			Name:    "my_task_is",
			Pattern: "my (job|task|project|assignment) is [to] *",
			Base:    tierHigh,
			Parse:   parseJobStatus(types.StatusActive),
		},
		{
			Name:    "im_building",
			Pattern: "(i'm|i am|we're|we are) building *",
			Base:    tierModerate,
			Parse:   parseJobStatus(types.StatusActive),
		},
		{
			Name:    "paused_work",
			Pattern: "i (paused|shelved) *",
			Base:    tierModerate,
			Parse:   parseJobStatus(types.StatusPaused),
		},
		{
			Name:    "break_from",
			Pattern: "(i'm|i am) taking a break from *",
			Base:    0.80,
			Parse:   parseJobStatus(types.StatusPaused),
		},
		{
			Name:    "wrapping_up",
			Pattern: "(i'm|i am|we're|we are) wrapping up *",
			Base:    tierModerate,
			Parse:   parseJobStatus(types.StatusCompleting),
		},
		{
			Name:    "almost_done",
			Pattern: "(i'm|i am) almost done with *",
			Base:    0.88,
			Parse:   parseJobStatus(types.StatusCompleting),
		},
	},
	Validate:       validateJob,
	Key:            func(j types.Job) string { return truncKey(j.Description, 60) },
	Confidence:     func(j types.Job) float64 { return j.Confidence },
	WithConfidence: func(j types.Job, c float64) types.Job { j.Confidence = c; return j },
}

func parseJobStatus(status string) func(*analyze.Doc, analyze.Match) []types.Job {
	return func(doc *analyze.Doc, m analyze.Match) []types.Job {
		if m.IsQuestion() {
			return nil
		}
		return []types.Job{{Description: m.Rest(), Status: status}}
	}
}

func validateJob(doc *analyze.Doc, j types.Job) (types.Job, bool) {
	desc, ok := pipeline.Normalize(j.Description, pipeline.NormalizeRules{MinLen: 3, MaxLen: 150})
	if !ok {
		return j, false
	}
	lower := strings.ToLower(desc)
	// Goal tense means it has not started; that bucket outranks jobs.
	if containsAny(lower, "want to", "planning to", "hope to", "would like to") {
		return j, false
	}
	// Completed work is an experience, not a job — except paused work
	// described with a perfective ("shelved the site I built").
	if j.Status != types.StatusPaused &&
		containsAny(lower, "built", "finished", "shipped", "completed", "delivered") {
		return j, false
	}
	switch j.Status {
	case types.StatusActive, types.StatusPaused, types.StatusCompleting:
	default:
		j.Status = types.StatusActive
	}
	j.Description = desc
	return j, true
}

// ExtractJobs returns ongoing work described in text.
func ExtractJobs(text string) []types.Job { return jobsTable.Extract(text) }

// JobsFromDoc runs the job table against a document.
func JobsFromDoc(doc *analyze.Doc) []types.Job { return jobsTable.Run(doc) }
