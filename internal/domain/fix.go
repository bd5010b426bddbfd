package domain

import "context"

// Fix detects one upgrade hazard and describes how to resolve it.
//
// Check must be deterministic for a given ProjectContext and must never
// write. A returned error is a hard failure that aborts the whole run; use
// Skipped for expected absent-state conditions instead.
type Fix interface {
	ID() string
	PromptOnly() bool
	Check(ctx context.Context, pc *ProjectContext) (Outcome, error)
	Prompt(options any) Guidance
}

// Applier is implemented by fixes that can resolve their hazard without
// the user. Run must be idempotent.
type Applier interface {
	Run(ctx context.Context, pc *ProjectContext, options any) error
}

// Outcome is the result of a Check: NotApplicable, optionally with a
// warning, or Applicable with a rule-specific, JSON-serializable payload.
type Outcome struct {
	Applicable bool   `json:"applicable"`
	Options    any    `json:"options,omitempty"`
	Warning    string `json:"warning,omitempty"`
}

// NotApplicable reports that the hazard does not exist in this project.
func NotApplicable() Outcome {
	return Outcome{}
}

// Skipped reports NotApplicable because an expected precondition such as a
// config file is absent. The warning is logged, the run continues.
func Skipped(warning string) Outcome {
	return Outcome{Warning: warning}
}

// Applicable reports the hazard with the payload consumed by Prompt and Run.
func Applicable(options any) Outcome {
	return Outcome{Applicable: true, Options: options}
}

// Guidance is the human-readable remediation a fix renders for the user.
type Guidance struct {
	Label       string   `json:"label"`
	Summary     string   `json:"summary"`
	Details     []string `json:"details,omitempty"`
	Command     string   `json:"command,omitempty"`
	CommandNote string   `json:"command_note,omitempty"`
	Link        string   `json:"link,omitempty"`
}
