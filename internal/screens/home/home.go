// Package home is the signed-in dashboard.
package home

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	engine "github.com/abhisek/examportal/internal/exam"
	"github.com/abhisek/examportal/internal/grading"
	"github.com/abhisek/examportal/internal/logging"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	certscreen "github.com/abhisek/examportal/internal/screens/certificates"
	examscreen "github.com/abhisek/examportal/internal/screens/exam"
	"github.com/abhisek/examportal/internal/screens/exams"
	"github.com/abhisek/examportal/internal/screens/history"
	practicescreen "github.com/abhisek/examportal/internal/screens/practice"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
	"github.com/abhisek/examportal/internal/ui/theme"
	"github.com/abhisek/examportal/internal/user"
)

type timeSource func() time.Time

type dashboardLoadedMsg struct {
	Data dashboard
}

// HomeScreen is the dashboard with the main menu.
type HomeScreen struct {
	sess       *screen.Session
	menu       components.Menu
	menuLabels []string
	data       dashboard
	loaded     bool
	autostart  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen for the signed-in user.
func New(sess *screen.Session) *HomeScreen {
	h := &HomeScreen{sess: sess}

	items := []components.MenuItem{
		{Label: "BROWSE EXAMS", Action: func() tea.Cmd {
			return router.PushCmd(exams.New(sess))
		}},
		{Label: "PRACTICE", Action: func() tea.Cmd {
			return router.PushCmd(practicescreen.New(sess))
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return router.PushCmd(history.New(sess))
		}},
		{Label: "CERTIFICATES", Action: func() tea.Cmd {
			return router.PushCmd(certscreen.New(sess))
		}},
		{Label: "SIGN OUT", Action: func() tea.Cmd {
			return tea.Batch(router.PopToRootCmd(), func() tea.Msg {
				return screen.UserChangedMsg{}
			})
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	if sess.Practice == nil {
		items[1].Disabled = true
	}

	h.menu = components.NewMenu(items)
	for _, it := range items {
		h.menuLabels = append(h.menuLabels, it.Label)
	}
	return h
}

// WithAutostart makes Init open the exam with the given id once.
func (h *HomeScreen) WithAutostart(examID string) *HomeScreen {
	h.autostart = examID
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.autostart == "" || h.sess.Catalog == nil {
		return h.load()
	}
	id := h.autostart
	h.autostart = ""
	cfg, ok := h.sess.Catalog.Get(id)
	if !ok {
		log.Warn().Str("exam", id).Msg("unknown exam requested at startup")
		return h.load()
	}
	return tea.Batch(h.load(), router.PushCmd(examscreen.New(h.sess, cfg, engine.Options{Now: h.sess.Now})))
}

// Resume reloads the dashboard after an exam or another screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	sess := h.sess
	return func() tea.Msg {
		return dashboardLoadedMsg{Data: loadDashboard(context.Background(), sess)}
	}
}

// loadDashboard reads what it can; a failing repository leaves its part
// of the dashboard empty.
func loadDashboard(ctx context.Context, sess *screen.Session) dashboard {
	var d dashboard
	uid := sess.User.ID
	lg := logging.Component("home").With().Str("user", uid).Logger()

	if sess.Progress != nil {
		if p, err := sess.Progress.Get(ctx, uid); err != nil {
			lg.Warn().Err(err).Msg("failed to load progress")
		} else if p != nil {
			d.progress = *p
		}
	}
	if sess.History != nil {
		entries, err := sess.History.List(ctx, uid, store.QueryOpts{})
		if err != nil {
			lg.Warn().Err(err).Msg("failed to load history")
		}
		d.recent = entries
		scores := make([]int, len(entries))
		for i, e := range entries {
			scores[i] = e.Score
		}
		d.stats = grading.Summarize(scores)
	}
	if sess.Certificates != nil {
		certs, err := sess.Certificates.List(ctx, uid)
		if err != nil {
			lg.Warn().Err(err).Msg("failed to load certificates")
		}
		d.certificates = len(certs)
	}
	return d
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Sign out"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		h.data = msg.Data
		h.loaded = true
		u, xp := h.sess.User, msg.Data.progress.XP
		return h, func() tea.Msg { return screen.UserChangedMsg{User: u, XP: xp} }

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return h, tea.Batch(router.PopToRootCmd(), func() tea.Msg {
				return screen.UserChangedMsg{User: user.User{}}
			})
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	t := h.sess.Translator()

	var sections []string
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(t.Td("Welcome", map[string]any{"Name": h.sess.User.Name})))

	sections = append(sections, renderStatsBar(h.data, cw, compact))
	if !compact {
		sections = append(sections, renderRecent(h.data.recent, t, h.sess.Clock, cw))
	}

	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, joinWithGaps(sections)...)
	return components.Panel(content, width, height)
}

func joinWithGaps(sections []string) []string {
	out := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s)
	}
	return out
}
