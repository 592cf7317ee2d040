package views

import (
	"github.com/charmbracelet/lipgloss"

	"wardview/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	LogBox        lipgloss.Style
	InfoBox       lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		LogBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			MarginBottom(1).
			Width(80).
			Height(20).
			BorderForeground(lipgloss.Color("241")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			MarginBottom(1).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // Will be dynamically adjusted
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Tab:           lipgloss.NewStyle().Faint(true),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Underline(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}

// GetLevelColor returns the display color for a log level
func GetLevelColor(level domain.Level) string {
	switch level {
	case domain.LevelError:
		return "203" // red
	case domain.LevelWarning:
		return "214" // yellow
	case domain.LevelDebug:
		return "241" // gray
	default:
		return "252" // near-white for info
	}
}

// GetSyncColor returns the display color for a sync status
func GetSyncColor(status domain.SyncStatus) string {
	switch status {
	case domain.SyncSynced:
		return "78" // green
	case domain.SyncFailed:
		return "203" // red
	case domain.SyncProcessing:
		return "51" // cyan
	case domain.SyncPending:
		return "214" // yellow
	default:
		return "241" // gray for records the queue has not seen
	}
}
