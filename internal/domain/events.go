package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRefreshRequested EventType = "RefreshRequested"
	EventSnapshotLoaded   EventType = "SnapshotLoaded"
	EventLoadFailed       EventType = "LoadFailed"
	EventSourceChanged    EventType = "SourceChanged"
	EventWatchError       EventType = "WatchError"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventConfigChanged    EventType = "ConfigChanged"
	EventAppReady         EventType = "AppReady"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RefreshReason says what triggered a reload request.
type RefreshReason string

const (
	RefreshTick   RefreshReason = "tick"
	RefreshManual RefreshReason = "manual"
	RefreshChange RefreshReason = "change"
	RefreshInit   RefreshReason = "init"
)

// RefreshRequestedEvent asks the refresh service for a full snapshot reload.
// Fire-and-forget: publishers never wait for or observe the outcome.
type RefreshRequestedEvent struct {
	Reason RefreshReason
}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// SnapshotLoadedEvent is emitted when a reload completes. The snapshot
// replaces whatever the UI currently shows.
type SnapshotLoadedEvent struct {
	Snapshot *Snapshot
	Elapsed  time.Duration
}

func (e SnapshotLoadedEvent) Type() EventType { return EventSnapshotLoaded }

// LoadFailedEvent is emitted when a reload fails. The UI keeps the stale
// snapshot until a later reload succeeds.
type LoadFailedEvent struct {
	Origin string
	Err    error
}

func (e LoadFailedEvent) Type() EventType { return EventLoadFailed }

// SourceChangedEvent is emitted by the file watcher when the export is
// rewritten on disk.
type SourceChangedEvent struct {
	Path string
}

func (e SourceChangedEvent) Type() EventType { return EventSourceChanged }

// WatchErrorEvent is emitted when the file watcher hits a non-fatal error.
type WatchErrorEvent struct {
	Err error
}

func (e WatchErrorEvent) Type() EventType { return EventWatchError }

// ErrorEvent is emitted when an error occurs outside load/watch paths.
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	DataDir string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	ExpandedSections map[string]bool // roster sections open at quit
	SortMode         string
	ExpandDetails    bool
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }

// AppReadyEvent is emitted when the app is fully initialized and ready
type AppReadyEvent struct {
	HasExistingConfig bool
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
