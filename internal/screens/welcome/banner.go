package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cosmath/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██████╗ ███████╗███╗   ███╗ █████╗ ████████╗██╗  ██╗
 ██╔════╝██╔═══██╗██╔════╝████╗ ████║██╔══██╗╚══██╔══╝██║  ██║
 ██║     ██║   ██║███████╗██╔████╔██║███████║   ██║   ███████║
 ██║     ██║   ██║╚════██║██║╚██╔╝██║██╔══██║   ██║   ██╔══██║
 ╚██████╗╚██████╔╝███████║██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║
  ╚═════╝ ╚═════╝ ╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "C O S M A T H"

// RenderBanner returns the title banner, or a compact version for
// terminals narrower than 64 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 64 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
