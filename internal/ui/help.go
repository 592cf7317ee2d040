package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer builds the full key reference shown in the pager; the
// in-app overlay (?) is rendered by the views package.
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContentPlain generates the complete key reference with colors
// for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	// Title
	help.WriteString(titleStyle.Render("Wardview Help"))
	help.WriteString("\n")

	// Navigation section
	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, j/k"), descStyle.Render("Move up/down")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("PgUp/PgDn"), descStyle.Render("Page up/down")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("gg/G"), descStyle.Render("Go to top/bottom")))
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("Tab"), descStyle.Render("Next tab")))
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("1/2"), descStyle.Render("Roster / Activity tab")))
	help.WriteString("\n")

	// Sections & details section
	help.WriteString(sectionStyle.Render("Sections & Details"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("Enter/Space/z"), descStyle.Render("Toggle section or entry details")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("e"), descStyle.Render("Expand all")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("c"), descStyle.Render("Collapse all")))
	help.WriteString("\n")

	// Data section
	help.WriteString(sectionStyle.Render("Data"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("r"), descStyle.Render("Reload from the export now")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("o"), descStyle.Render("Open entry details in pager")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("i"), descStyle.Render("Show info for person or entry")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("y"), descStyle.Render("Copy record id to clipboard")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("L"), descStyle.Render("View application log")))
	help.WriteString("\n")

	// Search & filter section
	help.WriteString(sectionStyle.Render("Search & Filter"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("/"), descStyle.Render("Search")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("n"), descStyle.Render("Next search result")))
	help.WriteString(fmt.Sprintf("  %s      %s\n", keyStyle.Render("Shift+N"), descStyle.Render("Previous search result")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("F"), descStyle.Render("Filter rows as you type")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("s"), descStyle.Render("Sort options (roster)")))
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("Esc"), descStyle.Render("Clear filter, then search")))
	help.WriteString("\n")

	// Filter examples (using italic style)
	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(filterStyle.Render("  Filter examples: role:nurse, status:failed, level:error"))
	help.WriteString("\n")

	// Other section
	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("?"), descStyle.Render("Toggle help overlay")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("H"), descStyle.Render("This reference in the pager")))
	help.WriteString(fmt.Sprintf("  %s            %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}
