package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/ui/theme"
)

// optionLabels prefix the answer options.
var optionLabels = []string{"A", "B", "C", "D"}

// OptionLabel returns the letter shown for option i.
func OptionLabel(i int) string {
	if i >= 0 && i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprint(i + 1)
}

// OptionList renders the options of one question. During an exam Cursor
// is the highlighted row and Chosen the recorded answer. In review mode the
// correct option and a wrong choice are colored instead.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when unanswered
	Review  bool
	Correct int
	Width   int
}

// View renders the options, one per line.
func (o OptionList) View() string {
	width := o.Width
	if width <= 0 {
		width = 60
	}

	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if !o.Review && i == o.Cursor {
			prefix = "▸ "
		}
		mark := "○"
		if i == o.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d) %s  %s", prefix, mark, i+1, OptionLabel(i), opt)

		style := lipgloss.NewStyle().Width(width)
		switch {
		case o.Review && i == o.Correct:
			style = style.Foreground(theme.Success).Bold(true)
			line += "  ✓"
		case o.Review && i == o.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
			line += "  ✗"
		case o.Review:
			style = style.Foreground(theme.TextDim)
		case i == o.Chosen:
			style = style.Foreground(theme.Secondary).Bold(true)
		case i == o.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		default:
			style = style.Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
