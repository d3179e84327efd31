package selectctl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the label, the current value, and (when focused) the search
// input with the option list.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	if m.value != nil {
		b.WriteString(": ")
		b.WriteString(selectedStyle.Render(m.value.Display()))
	}
	b.WriteString("\n")

	if !m.focused {
		return b.String()
	}

	b.WriteString(m.Input.View())
	b.WriteString("\n")
	b.WriteString(m.listView())
	return b.String()
}

func (m Model) listView() string {
	switch {
	case m.state == PendingFetch || m.state == Fetching:
		return mutedStyle.Render("  searching...") + "\n"
	case len(m.options) == 0 && m.state == Resolved:
		return mutedStyle.Render("  No results found") + "\n"
	case len(m.options) == 0:
		return ""
	}

	start := 0
	if m.cursor >= m.pageSize {
		start = m.cursor - m.pageSize + 1
	}
	end := start + m.pageSize
	if end > len(m.options) {
		end = len(m.options)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		opt := m.options[i]
		line := "  " + opt.Display()
		if i == m.cursor {
			line = cursorStyle.Render("> " + opt.Display())
		}
		if m.value != nil && m.value.Value == opt.Value {
			line += selectedStyle.Render(" *")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(m.options) {
		b.WriteString(mutedStyle.Render("  ..."))
		b.WriteString("\n")
	}
	return b.String()
}
