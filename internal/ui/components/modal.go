package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/ui/theme"
)

// Confirm is a yes/no dialog. Focus picks the highlighted button; the
// screen owning it maps y/n/enter to its own actions.
type Confirm struct {
	Title string
	Lines []string
	Yes   string
	No    string
	Focus bool // true when Yes is highlighted
}

// Toggle moves the highlight between the two buttons.
func (c *Confirm) Toggle() {
	c.Focus = !c.Focus
}

// View renders the dialog centered in width.
func (c Confirm) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Title))
	b.WriteString("\n")
	for _, l := range c.Lines {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(l))
	}
	b.WriteString("\n\n")

	yes := NewButton("[Y] "+c.Yes, c.Focus, nil)
	no := NewButton("[N] "+c.No, !c.Focus, nil)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yes.View(), "  ", no.View()))

	box := theme.Modal.Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
