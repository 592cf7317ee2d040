package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"wardview/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventRefreshRequested = domain.EventRefreshRequested
	EventSnapshotLoaded   = domain.EventSnapshotLoaded
	EventLoadFailed       = domain.EventLoadFailed
	EventSourceChanged    = domain.EventSourceChanged
	EventWatchError       = domain.EventWatchError
	EventError            = domain.EventError
	EventConfigLoaded     = domain.EventConfigLoaded
	EventConfigSaved      = domain.EventConfigSaved
	EventConfigChanged    = domain.EventConfigChanged
	EventAppReady         = domain.EventAppReady
)

// Refresh reasons
const (
	RefreshTick   = domain.RefreshTick
	RefreshManual = domain.RefreshManual
	RefreshChange = domain.RefreshChange
	RefreshInit   = domain.RefreshInit
)

// Re-export domain event types
type RefreshRequestedEvent = domain.RefreshRequestedEvent
type SnapshotLoadedEvent = domain.SnapshotLoadedEvent
type LoadFailedEvent = domain.LoadFailedEvent
type SourceChangedEvent = domain.SourceChangedEvent
type WatchErrorEvent = domain.WatchErrorEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent
type AppReadyEvent = domain.AppReadyEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

// subscription pairs a handler with a removable identity.
type subscription struct {
	id int
	fn EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	nextID    int
	handlers  map[EventType][]subscription
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	once      sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers. Never blocks: when the
// buffer is full the event is dropped and logged.
func (b *bus) Publish(event DomainEvent) {
	log.Printf("EventBus: Publishing event %s", event.Type())

	select {
	case b.eventChan <- event:
		// Event sent successfully
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, fn: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after draining buffered events.
func (b *bus) Close() {
	b.once.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.fanOut(event)

		case <-b.quit:
			// Drain remaining events so late publishes still land
			for {
				select {
				case event := <-b.eventChan:
					b.fanOut(event)
				default:
					return
				}
			}
		}
	}
}

// fanOut calls every handler registered for the event's type. Handlers run
// in their own goroutines so a slow subscriber cannot stall dispatch.
func (b *bus) fanOut(event DomainEvent) {
	b.mu.RLock()
	subs := b.handlers[event.Type()]
	fns := make([]EventHandler, len(subs))
	for i, s := range subs {
		fns[i] = s.fn
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		go func(h EventHandler, eventType EventType) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
				}
			}()
			h(event)
		}(fn, event.Type())
	}
}
