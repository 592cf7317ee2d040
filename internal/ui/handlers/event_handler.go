package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wardview/internal/eventbus"
	"wardview/internal/ui/state"
)

// TickMsg is a tick message for animations
type TickMsg time.Time

// EventHandler handles domain events and updates state
type EventHandler struct {
	state      *state.AppState
	updateRows func()
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, updateRows func()) *EventHandler {
	return &EventHandler{
		state:      appState,
		updateRows: updateRows,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.RefreshRequestedEvent:
		// The refresh service does the IO; the UI only shows the spinner.
		// If the request is dropped (one already in flight) the loaded or
		// failed event from that one clears the flag just the same.
		h.state.Loading = true
		return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
			return TickMsg(t)
		})

	case eventbus.SnapshotLoadedEvent:
		// Wholesale replacement, disclosure and cursor survive
		h.state.ApplySnapshot(e.Snapshot)
		h.updateRows()
		h.state.StatusMessage = fmt.Sprintf("Loaded %d people, %d entries in %s",
			len(e.Snapshot.People), len(e.Snapshot.Entries), e.Elapsed.Round(time.Millisecond))

	case eventbus.LoadFailedEvent:
		// Keep the stale snapshot on screen; the next tick retries
		h.state.Loading = false
		h.state.LoadError = e.Err.Error()
		h.state.StatusMessage = ""

	case eventbus.SourceChangedEvent:
		h.state.StatusMessage = fmt.Sprintf("Source changed: %s", e.Path)

	case eventbus.WatchErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Watch error: %v", e.Err)

	case eventbus.ErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)

	case eventbus.ConfigSavedEvent:
		h.state.StatusMessage = "View settings saved"
	}

	return nil
}
