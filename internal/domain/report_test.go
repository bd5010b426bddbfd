package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/automigrate/internal/domain"
)

func TestRunReport_ExitCode(t *testing.T) {
	tests := []struct {
		name    string
		actions []domain.Action
		want    int
	}{
		{"empty", nil, domain.ExitOK},
		{"nothing applicable", []domain.Action{domain.ActionNone, domain.ActionNone}, domain.ExitOK},
		{"all applied", []domain.Action{domain.ActionApplied, domain.ActionNone}, domain.ExitOK},
		{"manual action", []domain.Action{domain.ActionApplied, domain.ActionManual}, domain.ExitNeedsAttention},
		{"dry run leftover", []domain.Action{domain.ActionSkipped}, domain.ExitNeedsAttention},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &domain.RunReport{}
			for i, a := range tt.actions {
				r.Entries = append(r.Entries, domain.ReportEntry{FixID: string(rune('a' + i)), Action: a})
			}
			assert.Equal(t, tt.want, r.ExitCode())
		})
	}
}

func TestRunReport_Count(t *testing.T) {
	r := &domain.RunReport{Entries: []domain.ReportEntry{
		{FixID: "a", Action: domain.ActionManual},
		{FixID: "b", Action: domain.ActionManual},
		{FixID: "c", Action: domain.ActionApplied},
	}}
	assert.Equal(t, 2, r.Count(domain.ActionManual))
	assert.Equal(t, 1, r.Count(domain.ActionApplied))
	assert.Equal(t, 0, r.Count(domain.ActionSkipped))
}

func TestOutcome_Constructors(t *testing.T) {
	assert.False(t, domain.NotApplicable().Applicable)
	assert.Empty(t, domain.NotApplicable().Warning)

	skipped := domain.Skipped("no main config")
	assert.False(t, skipped.Applicable)
	assert.Equal(t, "no main config", skipped.Warning)

	applicable := domain.Applicable(map[string]bool{"needsExternalConfig": true})
	assert.True(t, applicable.Applicable)
	assert.NotNil(t, applicable.Options)
}

func TestReportEntry_JSONShape(t *testing.T) {
	entry := domain.ReportEntry{
		FixID:    "missing-babelrc",
		Outcome:  domain.Applicable(map[string]bool{"needsExternalConfig": true}),
		Action:   domain.ActionManual,
		Guidance: &domain.Guidance{Label: "Attention", Summary: "do it"},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "missing-babelrc", decoded["fix_id"])
	assert.Equal(t, "manual", decoded["action"])
	outcome := decoded["outcome"].(map[string]any)
	assert.Equal(t, true, outcome["applicable"])
	assert.Equal(t, map[string]any{"needsExternalConfig": true}, outcome["options"])
}
