package domain

// Action is what the runner did with a fix after checking it.
type Action string

const (
	ActionNone    Action = "none"    // not applicable
	ActionApplied Action = "applied" // Run succeeded
	ActionManual  Action = "manual"  // guidance shown, user must act
	ActionSkipped Action = "skipped" // applicable and auto-fixable, but dry run
)

// Exit codes derived from a RunReport.
const (
	ExitOK             = 0
	ExitHardFailure    = 1
	ExitNeedsAttention = 2
)

// ReportEntry records one fix evaluated during a run.
type ReportEntry struct {
	FixID    string    `json:"fix_id"`
	Outcome  Outcome   `json:"outcome"`
	Action   Action    `json:"action"`
	Guidance *Guidance `json:"guidance,omitempty"`
}

// RunReport is the ordered result of one run.
type RunReport struct {
	DryRun  bool          `json:"dry_run"`
	Entries []ReportEntry `json:"entries"`
}

// Count returns how many entries ended with action a.
func (r *RunReport) Count(a Action) int {
	n := 0
	for _, e := range r.Entries {
		if e.Action == a {
			n++
		}
	}
	return n
}

// NeedsAttention reports whether any fix is still unresolved.
func (r *RunReport) NeedsAttention() bool {
	return r.Count(ActionManual) > 0 || r.Count(ActionSkipped) > 0
}

// ExitCode is ExitOK when every fix was not applicable or applied.
func (r *RunReport) ExitCode() int {
	if r.NeedsAttention() {
		return ExitNeedsAttention
	}
	return ExitOK
}
