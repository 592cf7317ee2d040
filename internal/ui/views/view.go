package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"wardview/internal/domain"
	"wardview/internal/ui/input/modes"
	"wardview/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	Tab             state.Tab
	Rows            []state.Row
	People          map[string]*domain.Person
	Entries         map[int64]*domain.Entry
	SectionOpen     map[string]bool
	ExpandedEntries map[int64]bool
	RosterCount     int
	ActivityCount   int
	SelectedIndex   int
	ViewportOffset  int
	ViewportHeight  int
	Stats           domain.QueueStats
	Origin          string
	LoadedAt        time.Time
	Loading         bool
	Visible         bool
	LoadError       string
	StatusMessage   string
	ShowHelp        bool
	ShowInfo        bool
	InfoContent     string
	SearchQuery     string
	FilterQuery     string
	IsFiltered      bool
	TextInput       string
	InputMode       string
	SortOptionIndex int
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	rosterRender   *RosterRenderer
	activityRender *ActivityRenderer
	popupRender    *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		rosterRender:   NewRosterRenderer(styles),
		activityRender: NewActivityRenderer(styles),
		popupRender:    NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")
	content.WriteString(r.renderTabs(vs))
	content.WriteString("\n")

	// Stale-data warning survives until the next successful reload
	if vs.LoadError != "" {
		warning := fmt.Sprintf("⚠ reload failed: %s", vs.LoadError)
		if !vs.LoadedAt.IsZero() {
			warning += fmt.Sprintf(" — showing data from %s", vs.LoadedAt.Format("15:04:05"))
		}
		content.WriteString(r.styles.StatusError.Render(warning))
		content.WriteString("\n")
	}

	// Input prompt (filter, search, sort selector, quit confirm)
	if vs.InputMode != "" {
		if vs.InputMode == "sort" {
			content.WriteString(r.renderSortOptions(vs))
		} else {
			content.WriteString(vs.TextInput)
		}
		content.WriteString("\n")
		content.WriteString("\n")
	}

	// Main content
	mainContent := ""
	if len(vs.Rows) == 0 {
		switch {
		case vs.Loading:
			mainContent = r.styles.Dim.Render("Loading exports...")
		case vs.IsFiltered:
			mainContent = r.styles.Dim.Render("No rows match the filter. Esc clears it.")
		case vs.LoadError != "":
			mainContent = r.styles.Dim.Render("Nothing loaded yet. Fix the source and press r.")
		default:
			mainContent = r.styles.Dim.Render("No records found. Press r to reload.")
		}
	} else {
		mainContent = r.renderRows(vs)
	}

	content.WriteString(mainContent)

	// Bottom lines: status message and help hint
	var bottom []string
	if vs.StatusMessage != "" {
		bottom = append(bottom, r.styles.Status.Render(vs.StatusMessage))
	}
	if !vs.ShowHelp && !vs.ShowInfo {
		bottom = append(bottom, r.styles.Help.Render("Press ? for help"))
	}

	if len(bottom) > 0 {
		currentContent := content.String()
		currentLines := strings.Count(currentContent, "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := vs.Height - 2
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}

		paddingNeeded := availableLines - currentLines - len(bottom)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}

		for _, line := range bottom {
			content.WriteString("\n")
			content.WriteString(line)
		}
	}

	// Apply main container style
	mainStyle := r.styles.Main.MaxHeight(vs.Height)
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if vs.ShowInfo && vs.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, vs.InfoContent, vs.Height, vs.Width, r.styles.InfoBox)
	}

	if vs.ShowHelp {
		helpContent := r.renderHelpContent(vs.Height)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, vs.Height, vs.Width, r.styles.InfoBox)
	}

	return finalContent
}

// renderTitle builds the title line with right-aligned indicators
func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render("wardview")
	left := logo
	if vs.Origin != "" {
		left = fmt.Sprintf("%s %s", logo, r.styles.Dim.Render(vs.Origin))
	}

	// Build right side indicators
	indicators := []string{}

	if vs.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, fmt.Sprintf("%s Loading", spinner[frame]))
	}

	if !vs.Visible {
		indicators = append(indicators, "⏸ hidden — refresh paused")
	}

	rightContent := ""
	if len(indicators) > 0 {
		rightContent = r.styles.Dim.Render(strings.Join(indicators, " | "))
	}
	if vs.FilterQuery != "" {
		filterText := r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", vs.FilterQuery))
		if rightContent != "" {
			rightContent = fmt.Sprintf("%s  %s", rightContent, filterText)
		} else {
			rightContent = filterText
		}
	}

	if rightContent == "" {
		return left
	}

	// Calculate padding needed
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(rightContent)
	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - leftWidth - rightWidth

	if paddingWidth > 0 {
		return fmt.Sprintf("%s%s%s", left, strings.Repeat(" ", paddingWidth), rightContent)
	}
	return fmt.Sprintf("%s  %s", left, rightContent)
}

// renderTabs builds the tab strip with the queue totals on the right
func (r *Renderer) renderTabs(vs ViewState) string {
	roster := fmt.Sprintf("1:Roster (%d)", vs.RosterCount)
	activity := fmt.Sprintf("2:Activity (%d)", vs.ActivityCount)

	if vs.Tab == state.TabRoster {
		roster = r.styles.TabActive.Render(roster)
		activity = r.styles.Tab.Render(activity)
	} else {
		roster = r.styles.Tab.Render(roster)
		activity = r.styles.TabActive.Render(activity)
	}

	line := fmt.Sprintf("%s %s %s", roster, r.styles.Dim.Render("│"), activity)

	stats := r.renderStats(vs.Stats)
	if stats == "" {
		return line
	}

	lineWidth := lipgloss.Width(line)
	statsWidth := lipgloss.Width(stats)
	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lineWidth - statsWidth
	if paddingWidth > 0 {
		return fmt.Sprintf("%s%s%s", line, strings.Repeat(" ", paddingWidth), stats)
	}
	return fmt.Sprintf("%s  %s", line, stats)
}

// renderStats summarizes the sync queue counters
func (r *Renderer) renderStats(stats domain.QueueStats) string {
	if stats.Total() == 0 {
		return ""
	}
	parts := []string{
		r.styles.Dim.Render(fmt.Sprintf("%d pending", stats.Pending)),
		r.styles.Dim.Render(fmt.Sprintf("%d processing", stats.Processing)),
		r.styles.StatusSuccess.Render(fmt.Sprintf("%d synced", stats.Synced)),
	}
	failed := fmt.Sprintf("%d failed", stats.Failed)
	if stats.Failed > 0 {
		parts = append(parts, r.styles.StatusError.Render(failed))
	} else {
		parts = append(parts, r.styles.Dim.Render(failed))
	}
	return strings.Join(parts, r.styles.Dim.Render(" · "))
}

// renderRows renders the visible window of the active row list. The
// effective-height math mirrors the navigator's, so the selected row is
// always inside the window it computed.
func (r *Renderer) renderRows(vs ViewState) string {
	total := len(vs.Rows)

	needsTopIndicator := vs.ViewportOffset > 0
	needsBottomIndicator := vs.ViewportOffset+vs.ViewportHeight < total
	if !needsBottomIndicator && needsTopIndicator {
		remaining := total - vs.ViewportOffset
		if remaining > vs.ViewportHeight-1 {
			needsBottomIndicator = true
		}
	}

	effectiveHeight := vs.ViewportHeight
	if needsTopIndicator {
		effectiveHeight--
	}
	if needsBottomIndicator {
		effectiveHeight--
	}
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}

	var lines []string
	if needsTopIndicator {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", vs.ViewportOffset)))
	}

	end := vs.ViewportOffset + effectiveHeight
	if end > total {
		end = total
	}
	for i := vs.ViewportOffset; i < end; i++ {
		lines = append(lines, r.renderRow(vs, i))
	}

	if needsBottomIndicator {
		itemsBelow := total - end
		if itemsBelow < 0 {
			itemsBelow = 0
		}
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", itemsBelow)))
	}

	return strings.Join(lines, "\n")
}

// renderRow renders a single display row
func (r *Renderer) renderRow(vs ViewState, i int) string {
	row := vs.Rows[i]
	isSelected := i == vs.SelectedIndex
	width := vs.Width - 4

	switch row.Kind {
	case state.RowSection:
		return r.rosterRender.RenderSection(row.Section, row.Count, vs.SectionOpen[row.Section], isSelected, vs.SearchQuery, width)
	case state.RowPerson:
		return r.rosterRender.RenderPerson(vs.People[row.PersonID], isSelected, vs.SearchQuery, width)
	case state.RowEntry:
		return r.activityRender.RenderEntry(vs.Entries[row.EntryID], vs.ExpandedEntries[row.EntryID], isSelected, vs.SearchQuery, width)
	case state.RowDetail:
		return r.activityRender.RenderDetail(row.Text, isSelected)
	}
	return ""
}

// renderSortOptions renders the sort mode selection interface
func (r *Renderer) renderSortOptions(vs ViewState) string {
	// Show only the current sort option
	if vs.SortOptionIndex >= 0 && vs.SortOptionIndex < len(modes.SortOptions) {
		option := modes.SortOptions[vs.SortOptionIndex]
		sortLine := fmt.Sprintf("Sort by: %s - %s", option.Name, option.Description)
		helpLine := r.styles.Dim.Render("↑/↓ or j/k to change • Enter to accept • Esc to cancel")
		return sortLine + "\n" + helpLine
	}
	return ""
}

// renderHelpContent renders the help information
func (r *Renderer) renderHelpContent(height int) string {
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
	help.WriteString(titleStyle.Render("wardview Help"))
	help.WriteString("\n")

	// Navigation section
	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, j/k"), descStyle.Render("Move up/down")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("PgUp/PgDn"), descStyle.Render("Page up/down")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("gg/G"), descStyle.Render("Go to top/bottom")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("1/2, Tab"), descStyle.Render("Switch tab (Roster/Activity)")))

	// Disclosure section
	help.WriteString(sectionStyle.Render("Sections & Details"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("Enter/Space/z"), descStyle.Render("Toggle section or entry details")))
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("e/c"), descStyle.Render("Expand/collapse all")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("o"), descStyle.Render("Open entry details in pager")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("i"), descStyle.Render("Show record info")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("y"), descStyle.Render("Copy row to clipboard")))

	// Data section
	help.WriteString(sectionStyle.Render("Data"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("r"), descStyle.Render("Reload from the source now")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("s"), descStyle.Render("Sort roster (name/role/status)")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("L"), descStyle.Render("View the application log")))

	// Search & filter section
	help.WriteString(sectionStyle.Render("Search & Filter"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("/"), descStyle.Render("Search visible rows")))
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("n/N"), descStyle.Render("Next/previous match")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("F"), descStyle.Render("Filter rows as you type")))
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("Esc"), descStyle.Render("Clear filter, then search")))

	// Filter examples
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Filter examples: role:nurse, status:failed, level:error"))
	help.WriteString("\n")

	// Other section
	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("H"), descStyle.Render("Full help in the pager")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("?"), descStyle.Render("Toggle this help")))
	help.WriteString(fmt.Sprintf("  %s            %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	// Clamp to the popup's visible window
	content := help.String()
	lines := strings.Split(content, "\n")
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if len(lines) > visibleHeight {
		lines = lines[:visibleHeight]
		lines[len(lines)-1] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↓ press H for the full reference ↓")
	}

	return strings.Join(lines, "\n")
}
