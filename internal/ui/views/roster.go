package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wardview/internal/domain"
)

// RosterRenderer handles rendering of roster rows
type RosterRenderer struct {
	styles *Styles
}

// NewRosterRenderer creates a new roster renderer
func NewRosterRenderer(styles *Styles) *RosterRenderer {
	return &RosterRenderer{
		styles: styles,
	}
}

// RenderSection renders a role section header
func (r *RosterRenderer) RenderSection(name string, count int, isExpanded bool, isSelected bool,
	searchQuery string, width int) string {

	// Determine arrow
	arrow := "▶"
	if isExpanded {
		arrow = "▼"
	}

	// Build section name with search highlighting
	sectionName := name
	if searchQuery != "" && strings.Contains(strings.ToLower(sectionName), strings.ToLower(searchQuery)) {
		sectionName = highlightMatch(sectionName, searchQuery, r.styles.Highlight, lipgloss.NewStyle())
	}

	// Format the complete line
	line := fmt.Sprintf("%s %s (%d)", arrow, sectionName, count)

	// Apply background when the cursor is here
	if isSelected {
		if width > 0 {
			lineLen := lipgloss.Width(line)
			if lineLen < width {
				line = line + strings.Repeat(" ", width-lineLen)
			}
		}
		return r.styles.SelectionBg.Render(line)
	}

	return line
}

// RenderPerson renders one roster row
func (r *RosterRenderer) RenderPerson(p *domain.Person, isSelected bool, searchQuery string, width int) string {
	if p == nil {
		return ""
	}

	// Background color for selection
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}

	badge := syncBadge(p.Sync.Status)
	badgeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(GetSyncColor(p.Sync.Status)))
	if isSelected {
		badgeStyle = badgeStyle.Background(lipgloss.Color(bgColor))
	}

	// Build the roster line
	var parts []string

	// Indentation under the section header
	parts = append(parts, "  ")

	parts = append(parts, badgeStyle.Render(badge))
	parts = append(parts, " ")

	// Person name (with search highlighting if applicable)
	name := p.Name
	nameStyle := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))
	if searchQuery != "" && strings.Contains(strings.ToLower(name), strings.ToLower(searchQuery)) {
		name = highlightMatch(name, searchQuery,
			nameStyle.Foreground(lipgloss.Color("226")), nameStyle)
	}
	parts = append(parts, nameStyle.Render(name))

	// ID and unit
	metaStyle := lipgloss.NewStyle().Faint(true).Background(lipgloss.Color(bgColor))
	meta := fmt.Sprintf(" %s", p.ID)
	if p.Unit != "" {
		meta += fmt.Sprintf(" · %s", p.Unit)
	}
	if p.Email != "" {
		meta += fmt.Sprintf(" · %s", p.Email)
	}
	parts = append(parts, metaStyle.Render(meta))

	// Failure note, the way the queue reported it
	if p.Sync.Status == domain.SyncFailed && p.Sync.LastError != "" {
		failText := fmt.Sprintf(" [%s]", truncate(p.Sync.LastError, 40))
		failStyle := r.styles.StatusError.Background(lipgloss.Color(bgColor))
		parts = append(parts, failStyle.Render(failText))
	}

	return strings.Join(parts, "")
}

// syncBadge returns the roster icon for a sync status
func syncBadge(status domain.SyncStatus) string {
	switch status {
	case domain.SyncSynced:
		return "✓"
	case domain.SyncFailed:
		return "✗"
	case domain.SyncProcessing:
		return "⟳"
	case domain.SyncPending:
		return "○"
	default:
		return "·"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// highlightMatch highlights matching text within a string
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	// Split the text into parts
	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	// Render with appropriate styles
	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
