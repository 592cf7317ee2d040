package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wardview/internal/domain"
)

// ActivityRenderer handles rendering of activity feed rows
type ActivityRenderer struct {
	styles *Styles
}

// NewActivityRenderer creates a new activity renderer
func NewActivityRenderer(styles *Styles) *ActivityRenderer {
	return &ActivityRenderer{
		styles: styles,
	}
}

// RenderEntry renders one feed row
func (a *ActivityRenderer) RenderEntry(e *domain.Entry, isExpanded bool, isSelected bool,
	searchQuery string, width int) string {
	if e == nil {
		return ""
	}

	bgColor := ""
	if isSelected {
		bgColor = "238"
	}

	arrow := "▶"
	if isExpanded {
		arrow = "▼"
	}

	var parts []string

	arrowStyle := lipgloss.NewStyle().Faint(true).Background(lipgloss.Color(bgColor))
	parts = append(parts, arrowStyle.Render(arrow))
	parts = append(parts, " ")

	timeStyle := lipgloss.NewStyle().Faint(true).Background(lipgloss.Color(bgColor))
	if !e.Time.IsZero() {
		parts = append(parts, timeStyle.Render(e.Time.Format("15:04:05")))
		parts = append(parts, " ")
	}

	levelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(GetLevelColor(e.Level))).
		Background(lipgloss.Color(bgColor))
	parts = append(parts, levelStyle.Render(fmt.Sprintf("%-7s", e.Level)))
	parts = append(parts, " ")

	// Message (with search highlighting if applicable)
	message := e.Message
	messageStyle := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))
	if searchQuery != "" && strings.Contains(strings.ToLower(message), strings.ToLower(searchQuery)) {
		message = highlightMatch(message, searchQuery,
			messageStyle.Foreground(lipgloss.Color("226")), messageStyle)
	}
	parts = append(parts, messageStyle.Render(message))

	// Resource reference and operation
	refStyle := lipgloss.NewStyle().Faint(true).Background(lipgloss.Color(bgColor))
	ref := formatResourceRef(e)
	if ref != "" {
		parts = append(parts, refStyle.Render(fmt.Sprintf("  (%s)", ref)))
	}

	// Retry marker
	if e.Attempts > 1 {
		retryStyle := a.styles.StatusWarning.Background(lipgloss.Color(bgColor))
		parts = append(parts, retryStyle.Render(fmt.Sprintf(" ×%d", e.Attempts)))
	}

	return strings.Join(parts, "")
}

// RenderDetail renders one line of an expanded entry's detail block
func (a *ActivityRenderer) RenderDetail(text string, isSelected bool) string {
	line := "    " + text
	if isSelected {
		return a.styles.SelectionBg.Render(line)
	}
	return a.styles.Dim.Render(line)
}

// formatResourceRef builds the "Type/id op" suffix shown after a message
func formatResourceRef(e *domain.Entry) string {
	var b strings.Builder
	if e.ResourceType != "" {
		b.WriteString(e.ResourceType)
		if e.ResourceID != "" {
			b.WriteString("/")
			b.WriteString(e.ResourceID)
		}
	} else if e.ResourceID != "" {
		b.WriteString(e.ResourceID)
	}
	if e.Operation != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(string(e.Operation))
	}
	return b.String()
}
