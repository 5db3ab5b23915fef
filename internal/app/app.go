// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/screens/home"
	"github.com/abhisek/examportal/internal/screens/login"
	"github.com/abhisek/examportal/internal/ui/layout"
)

// Options configures a run of the portal.
type Options struct {
	Deps *screen.Deps

	// UserName signs in directly, skipping the name prompt.
	UserName string

	// ExamID opens this exam right after the first sign-in.
	ExamID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	width    int
	height   int
	userName string
	xp       int
}

// newAppModel creates an AppModel rooted at the login screen.
func newAppModel(opts Options) AppModel {
	autostart := opts.ExamID
	factory := func(sess *screen.Session) screen.Screen {
		h := home.New(sess)
		if autostart != "" {
			h.WithAutostart(autostart)
			autostart = ""
		}
		return h
	}
	root := login.New(opts.Deps, factory)
	if opts.UserName != "" {
		root.Prefill(opts.UserName)
	}
	return AppModel{
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.UserChangedMsg:
		m.userName = msg.User.Name
		m.xp = msg.XP
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.KeyHintProvider); ok {
			hints = p.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	header := layout.RenderHeader(title, m.userName, m.xp, m.width)
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
