package ui

import (
	"time"

	"wardview/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// refreshTickMsg is sent when the periodic reload timer fires
type refreshTickMsg time.Time

// detailPagerMsg contains the result of an entry detail pager command
type detailPagerMsg struct {
	entryID int64
	err     error
}

// logPagerMsg contains the result of an application log pager command
type logPagerMsg struct {
	path string
	err  error
}

// clipboardMsg contains the result of a yank to the system clipboard
type clipboardMsg struct {
	text string
	err  error
}

// clearStatusMsg signals that the transient status message should be cleared
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
