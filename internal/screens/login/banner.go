package login

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examportal/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗  ██╗ █████╗ ███╗   ███╗
 ██╔════╝╚██╗██╔╝██╔══██╗████╗ ████║
 █████╗   ╚███╔╝ ███████║██╔████╔██║
 ██╔══╝   ██╔██╗ ██╔══██║██║╚██╔╝██║
 ███████╗██╔╝ ██╗██║  ██║██║ ╚═╝ ██║
 ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝`

const bannerCompact = "E X A M   P O R T A L"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 40

// RenderBanner returns the banner styled in the primary color, or a compact
// fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("P O R T A L")
}
