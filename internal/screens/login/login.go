// Package login is the first screen: it asks for a display name and signs
// the user in.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
	"github.com/abhisek/examportal/internal/ui/theme"
	"github.com/abhisek/examportal/internal/user"
)

// recentLimit bounds the list of previous users offered for quick sign-in.
const recentLimit = 5

type recentLoadedMsg struct {
	Users []store.User
}

type signedInMsg struct {
	User user.User
	Err  error
}

// LoginScreen asks for a name and opens the dashboard.
type LoginScreen struct {
	deps        *screen.Deps
	homeFactory func(*screen.Session) screen.Screen
	input       components.TextInput
	recent      []store.User
	selected    int // -1 while typing
	errMsg      string
	busy        bool
	autoSubmit  bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen that opens the screen built by homeFactory once
// a user has signed in.
func New(deps *screen.Deps, homeFactory func(*screen.Session) screen.Screen) *LoginScreen {
	return &LoginScreen{
		deps:        deps,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Your name", false, user.MaxNameLength),
		selected:    -1,
	}
}

// Prefill puts name in the input and signs in as soon as the screen starts.
func (l *LoginScreen) Prefill(name string) *LoginScreen {
	l.input.Model.SetValue(name)
	l.autoSubmit = strings.TrimSpace(name) != ""
	return l
}

func (l *LoginScreen) Title() string {
	return "Sign in"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "↑↓", Description: "Recent"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{l.input.Init()}
	if l.autoSubmit {
		l.autoSubmit = false
		cmds = append(cmds, l.submit())
	}
	if l.deps.Users != nil {
		repo := l.deps.Users
		cmds = append(cmds, func() tea.Msg {
			users, err := repo.Recent(context.Background(), recentLimit)
			if err != nil {
				log.Warn().Err(err).Msg("failed to load recent users")
			}
			return recentLoadedMsg{Users: users}
		})
	}
	return tea.Batch(cmds...)
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recentLoadedMsg:
		l.recent = msg.Users
		return l, nil

	case signedInMsg:
		l.busy = false
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			return l, nil
		}
		l.errMsg = ""
		l.input.Model.SetValue("")
		l.selected = -1
		sess := &screen.Session{Deps: l.deps, User: msg.User}
		return l, router.PushCmd(l.homeFactory(sess))

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "enter":
			return l, l.submit()
		case "up":
			if l.selected >= 0 {
				l.selected--
			}
			l.fillSelected()
			return l, nil
		case "down":
			if l.selected < len(l.recent)-1 {
				l.selected++
			}
			l.fillSelected()
			return l, nil
		case "esc":
			return l, tea.Quit
		}
		l.selected = -1
		l.errMsg = ""
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) fillSelected() {
	if l.selected >= 0 && l.selected < len(l.recent) {
		l.input.Model.SetValue(l.recent[l.selected].Name)
		l.input.Model.CursorEnd()
	}
}

func (l *LoginScreen) submit() tea.Cmd {
	u, err := user.New(l.input.Value())
	if err != nil {
		if errors.Is(err, user.ErrInvalidName) {
			l.errMsg = fmt.Sprintf("Please enter a name of 1 to %d characters.", user.MaxNameLength)
		} else {
			l.errMsg = err.Error()
		}
		return nil
	}
	l.busy = true
	repo := l.deps.Users
	return func() tea.Msg {
		if repo != nil {
			if _, err := repo.Touch(context.Background(), u.ID, u.Name); err != nil {
				// Signing in works without the user table.
				log.Warn().Err(err).Str("user", u.ID).Msg("failed to record sign-in")
			}
		}
		log.Info().Str("user", u.ID).Msg("signed in")
		return signedInMsg{User: u}
	}
}

func (l *LoginScreen) View(width, height int) string {
	t := l.deps.Translator()
	var sections []string

	sections = append(sections, RenderBanner(width), "")
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(t.T("EnterName")), "")

	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(user.MaxNameLength + 4).
		Padding(0, 1).
		Render(l.input.View())
	sections = append(sections, field)

	if l.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(l.errMsg))
	}

	if len(l.recent) > 0 {
		var b strings.Builder
		b.WriteString(theme.Hint.Render("Recent (↑/↓)"))
		for i, u := range l.recent {
			b.WriteString("\n")
			if i == l.selected {
				b.WriteString(theme.Selected.Render("▸ " + u.Name))
			} else {
				b.WriteString(theme.Unselected.Render("  " + u.Name))
			}
		}
		sections = append(sections, "", b.String())
	}

	sections = append(sections, "", theme.Hint.Render("enter to continue · esc to quit"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
