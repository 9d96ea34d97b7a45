package console

import "time"

// StepDetail is the decorative detail block shown when a workflow step
// is inspected.
type StepDetail struct {
	EstTime    string
	Allocation string
	Threads    int
	Status     string
}

// Step is one stage of the content workflow. The catalog is fixed at
// boot; only the active index and the selection change at runtime.
type Step struct {
	ID      string
	Label   string
	Subtext string
	Detail  StepDetail
}

// stepCount is the length of the workflow cycle.
const stepCount = 4

// rotatePeriod is the fixed interval between workflow advances,
// independent of the metric tick.
const rotatePeriod = 8 * time.Second

// steps is the immutable workflow catalog, in rotation order.
var steps = [stepCount]Step{
	{
		ID:      "ideate",
		Label:   "IDEATE",
		Subtext: "mining trend clusters",
		Detail:  StepDetail{EstTime: "~2m", Allocation: "18%", Threads: 4, Status: "NOMINAL"},
	},
	{
		ID:      "create",
		Label:   "CREATE",
		Subtext: "drafting asset batch",
		Detail:  StepDetail{EstTime: "~6m", Allocation: "41%", Threads: 8, Status: "ACTIVE"},
	},
	{
		ID:      "optimize",
		Label:   "OPTIMIZE",
		Subtext: "scoring variants",
		Detail:  StepDetail{EstTime: "~3m", Allocation: "27%", Threads: 6, Status: "NOMINAL"},
	},
	{
		ID:      "publish",
		Label:   "PUBLISH",
		Subtext: "staging distribution",
		Detail:  StepDetail{EstTime: "~1m", Allocation: "14%", Threads: 2, Status: "STANDBY"},
	},
}

// Steps returns a copy of the workflow catalog in rotation order.
func Steps() []Step {
	s := make([]Step, stepCount)
	copy(s, steps[:])
	return s
}

// nextStep advances the active index, wrapping after the last stage.
func nextStep(i int) int {
	return (i + 1) % stepCount
}

// stepIndex resolves a catalog id to its position, or -1.
func stepIndex(id string) int {
	for i := range steps {
		if steps[i].ID == id {
			return i
		}
	}
	return -1
}
