package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/fluentwave/fluentwave/internal/ui/theme"
)

const bannerArt = `
 ╔═╗ ╦   ╦ ╦ ╔═╗ ╔╗╔ ╔╦╗ ╦ ╦ ╔═╗ ╦  ╦ ╔═╗
 ╠╣  ║   ║ ║ ║╣  ║║║  ║  ║║║ ╠═╣ ╚╗╔╝ ║╣
 ╚   ╩═╝ ╚═╝ ╚═╝ ╝╚╝  ╩  ╚╩╝ ╩ ╩  ╚╝  ╚═╝`

const bannerCompact = "F L U E N T W A V E"

// RenderBanner returns the FLUENTWAVE banner styled in the primary
// color. Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 46 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
