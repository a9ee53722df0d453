package ux

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carelane/carectl/internal/appointment"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)

	statusStyles = map[appointment.Status]lipgloss.Style{
		appointment.StatusScheduled:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		appointment.StatusRescheduled: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		appointment.StatusCompleted:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		appointment.StatusCancelled:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
	statusUnknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// StatusBadge renders an appointment status with its color.
func StatusBadge(status appointment.Status) string {
	style, ok := statusStyles[status]
	if !ok {
		style = statusUnknownStyle
	}
	return style.Render(status.String())
}

// Table is a minimal text table for list command output.
type Table struct {
	Headers []string
	Rows    [][]string
}

// String renders the table with aligned columns.
func (t Table) String() string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range t.Headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(t.Headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(cellStyle.Render(pad(cell, widths[i])))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
