package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/grading"
)

// Color palette
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Highlight = lipgloss.Color("#FACC15") // Yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Marked    = lipgloss.Color("#A855F7") // Purple
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Grade families, keyed by grading.Grade.Family.
var families = map[string]color.Color{
	"green":  lipgloss.Color("#16A34A"),
	"blue":   lipgloss.Color("#2563EB"),
	"yellow": lipgloss.Color("#CA8A04"),
	"orange": lipgloss.Color("#EA580C"),
	"red":    lipgloss.Color("#DC2626"),
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Modal = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Accent).
		Padding(1, 4).
		Align(lipgloss.Center)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Skipped = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// GradeColor returns the color for a grade's family.
func GradeColor(g grading.Grade) color.Color {
	return families[g.Family()]
}

// GradeStyle renders a grade letter in its family color.
func GradeStyle(g grading.Grade) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GradeColor(g)).Bold(true)
}

// GradeBadge renders a grade letter on a tinted background.
func GradeBadge(g grading.Grade) string {
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(GradeColor(g)).
		Bold(true).
		Padding(0, 1).
		Render(g.Letter)
}

// ScoreColor colors a bare score by the grade it earns.
func ScoreColor(score int) color.Color {
	return GradeColor(grading.LetterGrade(score))
}

// BandColor colors a topic band.
func BandColor(b grading.Band) color.Color {
	switch b {
	case grading.BandGood:
		return Success
	case grading.BandFair:
		return Warning
	default:
		return Error
	}
}

// TimerColor colors the countdown by urgency.
func TimerColor(level exam.TimeLevel) color.Color {
	switch level {
	case exam.TimeCritical:
		return Error
	case exam.TimeWarning:
		return Warning
	default:
		return Success
	}
}

// StatusColor colors a navigator cell.
func StatusColor(s exam.QuestionStatus) color.Color {
	switch s {
	case exam.StatusCurrent:
		return Primary
	case exam.StatusAnswered:
		return Success
	case exam.StatusMarked:
		return Marked
	default:
		return Border
	}
}
