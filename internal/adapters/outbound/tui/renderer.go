package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/automigrate/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	link    = lipgloss.Color("#60A5FA") // blue
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a run summary: one line per fix plus totals.
func RenderReport(report *domain.RunReport) string {
	var b strings.Builder

	subtitle := "Storybook 7 automigrate"
	if report.DryRun {
		subtitle += " (dry run)"
	}
	b.WriteString(boxStyle.Render(headerStyle.Render("automigrate") + "\n" + dimStyle.Render(subtitle)))
	b.WriteString("\n\n")

	if len(report.Entries) == 0 {
		b.WriteString("  " + dimStyle.Render("No fixes selected.") + "\n")
		return b.String()
	}

	width := 0
	for _, e := range report.Entries {
		width = max(width, len(e.FixID))
	}

	for _, e := range report.Entries {
		fmt.Fprintf(&b, "  %s %s  %s\n", actionIcon(e.Action), titleStyle.Render(padRight(e.FixID, width)), actionLabel(e))
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	applied := report.Count(domain.ActionApplied)
	manual := report.Count(domain.ActionManual)
	skipped := report.Count(domain.ActionSkipped)

	switch {
	case !report.NeedsAttention() && applied == 0:
		b.WriteString("  " + passStyle.Render("No migrations needed.") + "\n")
	case !report.NeedsAttention():
		b.WriteString("  " + passStyle.Render(fmt.Sprintf("%d %s applied.", applied, plural(applied, "migration", "migrations"))) + "\n")
	default:
		var parts []string
		if applied > 0 {
			parts = append(parts, passStyle.Render(fmt.Sprintf("%d applied", applied)))
		}
		if manual > 0 {
			parts = append(parts, failStyle.Render(fmt.Sprintf("%d need manual action", manual)))
		}
		if skipped > 0 {
			parts = append(parts, warnStyle.Render(fmt.Sprintf("%d would be applied", skipped)))
		}
		b.WriteString("  " + strings.Join(parts, dimStyle.Render(" · ")) + "\n")
	}

	return b.String()
}

// RenderFixList formats the catalog listing.
func RenderFixList(fixes []domain.FixSummary) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Available fixes") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 40)) + "\n\n")

	width := 0
	for _, f := range fixes {
		width = max(width, len(f.ID))
	}
	for _, f := range fixes {
		mode := passStyle.Render("auto")
		if f.PromptOnly {
			mode = warnStyle.Render("manual")
		}
		fmt.Fprintf(&b, "  %s  %s\n", padRight(f.ID, width), mode)
	}
	return b.String()
}

func actionIcon(a domain.Action) string {
	switch a {
	case domain.ActionApplied:
		return passStyle.Render("✓")
	case domain.ActionManual:
		return failStyle.Render("!")
	case domain.ActionSkipped:
		return warnStyle.Render("~")
	default:
		return dimStyle.Render("·")
	}
}

func actionLabel(e domain.ReportEntry) string {
	switch e.Action {
	case domain.ActionApplied:
		return passStyle.Render("applied")
	case domain.ActionManual:
		return failStyle.Render("manual action required")
	case domain.ActionSkipped:
		return warnStyle.Render("would apply (dry run)")
	default:
		if e.Outcome.Warning != "" {
			return dimStyle.Render("skipped: " + e.Outcome.Warning)
		}
		return dimStyle.Render("not applicable")
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
