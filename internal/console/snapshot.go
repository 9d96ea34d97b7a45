package console

import "time"

// Snapshot is an immutable, self-contained view of the console state.
// The controller assembles one on demand after any mutation; the
// presentation layer renders from it and can never reach back into
// live state.
type Snapshot struct {
	Metrics    MetricState
	ActiveStep int
	Selected   *Step
	Log        []LogEntry

	// True while an advisor request is outstanding.
	AdvisorBusy bool

	Ticks     int64
	BriefPath string
	BuiltAt   time.Time
}
