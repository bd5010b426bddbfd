package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/automigrate/internal/domain"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(danger)
	fixIDStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	commandStyle = lipgloss.NewStyle().Foreground(link)
	linkStyle    = lipgloss.NewStyle().Foreground(warning)
	detailStyle  = lipgloss.NewStyle().Foreground(fg).Width(72)
)

// RenderGuidance formats a fix's guidance as a multi-line block: label,
// explanation, suggested command and migration guide link.
func RenderGuidance(fixID string, g domain.Guidance) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", fixIDStyle.Render(fixID), faintStyle.Render(strings.Repeat("─", max(0, 60-len(fixID)))))
	b.WriteString("\n")

	label := g.Label
	if label == "" {
		label = "Attention"
	}
	fmt.Fprintf(&b, "  %s: %s\n", labelStyle.Render(label), g.Summary)

	for _, d := range g.Details {
		b.WriteString("\n")
		b.WriteString(indent(detailStyle.Render(d), "  "))
		b.WriteString("\n")
	}

	if g.Command != "" {
		b.WriteString("\n")
		b.WriteString("    " + commandStyle.Render(g.Command) + "\n")
	}
	if g.CommandNote != "" {
		b.WriteString("\n")
		b.WriteString(indent(detailStyle.Render(g.CommandNote), "  "))
		b.WriteString("\n")
	}

	if g.Link != "" {
		b.WriteString("\n")
		b.WriteString("  " + dimStyle.Render("Please see the migration guide for more information:") + "\n")
		b.WriteString("  " + linkStyle.Render(g.Link) + "\n")
	}

	return b.String()
}

// Presenter implements domain.Presenter by writing rendered guidance to w.
type Presenter struct {
	w io.Writer
}

// NewPresenter creates a Presenter writing to w.
func NewPresenter(w io.Writer) *Presenter {
	return &Presenter{w: w}
}

func (p *Presenter) Present(fixID string, g domain.Guidance) error {
	_, err := io.WriteString(p.w, RenderGuidance(fixID, g))
	return err
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
