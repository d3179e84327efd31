package cascade

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-orderform/pkg/pricing"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	totalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the whole form.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Purchase order"))
	b.WriteString("\n\n")

	for i := range f.controls {
		b.WriteString(f.controls[i].View())
		b.WriteString("\n")
	}

	fields := f.store.Fields()
	if fields.Description != "" {
		b.WriteString("Description: ")
		b.WriteString(fields.Description)
		b.WriteString("\n")
	}
	b.WriteString(f.price.View())
	b.WriteString("\n")
	b.WriteString(f.discount.View())
	b.WriteString("\n")
	b.WriteString(totalStyle.Render("Total: " + pricing.Format(fields.Total)))
	b.WriteString("\n")

	if f.inputErr != nil {
		b.WriteString(errorStyle.Render(f.inputErr.Error()))
		b.WriteString("\n")
	}
	if f.submitErr != nil {
		b.WriteString(errorStyle.Render(f.submitErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab: move  enter: choose  esc: clear  ctrl+s: submit  ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}
