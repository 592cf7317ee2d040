package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup overlay on top of main content. The
// popup replaces whole backdrop lines; the rest of the backdrop is shown
// desaturated.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	popupLines := strings.Split(styledPopup, "\n")
	modalH := len(popupLines)
	if height <= 0 {
		height = 24
	}
	if width <= 0 {
		width = 80
	}

	baseLines := strings.Split(desaturateANSI(mainContent), "\n")
	// Pad the backdrop out to the full terminal height
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}

	out := make([]string, len(baseLines))
	copy(out, baseLines)
	for i, line := range popupLines {
		if y+i >= len(out) {
			break
		}
		out[y+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}

	return strings.Join(out, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	lines := strings.Split(plain, "\n")
	out := make([]string, len(lines))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		out[i] = dim.Render(line)
	}
	return strings.Join(out, "\n")
}
