// Package certificates shows the credentials earned by passing exams.
package certificates

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	certs "github.com/abhisek/examportal/internal/certificates"
	"github.com/abhisek/examportal/internal/router"
	"github.com/abhisek/examportal/internal/screen"
	"github.com/abhisek/examportal/internal/store"
	"github.com/abhisek/examportal/internal/ui/components"
	"github.com/abhisek/examportal/internal/ui/layout"
	"github.com/abhisek/examportal/internal/ui/theme"
)

type certificatesLoadedMsg struct {
	Records []store.Certificate
	Err     error
}

// CertificatesScreen lists certificates grouped into tier tabs. Tab 0
// shows every tier.
type CertificatesScreen struct {
	sess         *screen.Session
	all          []store.Certificate
	tab          int
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*CertificatesScreen)(nil)
var _ screen.KeyHintProvider = (*CertificatesScreen)(nil)

// New creates a new CertificatesScreen.
func New(sess *screen.Session) *CertificatesScreen {
	return &CertificatesScreen{sess: sess}
}

func (s *CertificatesScreen) Init() tea.Cmd {
	svc, userID := s.sess.Certificates, s.sess.User.ID
	return func() tea.Msg {
		if svc == nil {
			return certificatesLoadedMsg{}
		}
		records, err := svc.List(context.Background(), userID)
		return certificatesLoadedMsg{Records: records, Err: err}
	}
}

func (s *CertificatesScreen) Title() string {
	return "Certificates"
}

func (s *CertificatesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch tier"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CertificatesScreen) tabs() []certs.Tier {
	// Highest tier first after the "all" tab.
	tiers := certs.AllTiers()
	out := []certs.Tier{""}
	for i := len(tiers) - 1; i >= 0; i-- {
		out = append(out, tiers[i])
	}
	return out
}

func (s *CertificatesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case certificatesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		n := len(s.tabs())
		switch msg.String() {
		case "esc", "q":
			return s, router.PopCmd()
		case "tab", "right", "l":
			s.tab = (s.tab + 1) % n
			s.scrollOffset = 0
		case "shift+tab", "left", "h":
			s.tab = (s.tab - 1 + n) % n
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *CertificatesScreen) View(width, height int) string {
	t := s.sess.Translator()
	if s.errMsg != "" {
		return components.Message("Error: "+s.errMsg, lipgloss.NewStyle().Foreground(theme.Error), width)
	}
	if !s.loaded {
		return components.Message("Loading certificates...", theme.Hint, width)
	}
	if len(s.all) == 0 {
		return components.Message(t.T("NoCertificates"), theme.Hint.Italic(true), width)
	}

	var b strings.Builder

	sum := certs.Summarize(s.all)
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d certificates   average %d%%   %d verified\n", sum.Total, sum.AverageScore, sum.Verified)))
	b.WriteString("\n")

	var tabs []string
	for i, tier := range s.tabs() {
		var label string
		if tier == "" {
			label = fmt.Sprintf("All (%d)", sum.Total)
		} else {
			label = fmt.Sprintf("%s %s (%d)", tier.Icon(), tier.DisplayName(), sum.ByTier[tier])
		}
		if i == s.tab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No certificates in this tier yet"))
		return b.String()
	}

	// Each certificate takes two lines.
	maxVisible := max((height-10)/2, 2)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, c := range filtered[start:end] {
		tier := certs.Tier(c.Tier)
		head := fmt.Sprintf("%s %-34s %3d%%  %s", tier.Icon(), c.Title, c.Score, c.Grade)
		sub := fmt.Sprintf("   %s   issued %s   %s", c.CredentialID, c.IssuedAt.Format("Jan 02, 2006"), c.Status)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(tierColor(tier)).Bold(true).Render(head)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(sub)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *CertificatesScreen) filtered() []store.Certificate {
	tier := s.tabs()[s.tab]
	if tier == "" {
		return s.all
	}
	var out []store.Certificate
	for _, c := range s.all {
		if certs.Tier(c.Tier) == tier {
			out = append(out, c)
		}
	}
	return out
}

func tierColor(t certs.Tier) color.Color {
	switch t {
	case certs.TierPlatinum:
		return theme.Accent
	case certs.TierGold:
		return theme.Highlight
	case certs.TierSilver:
		return theme.Text
	case certs.TierBronze:
		return theme.Warning
	default:
		return theme.Text
	}
}
