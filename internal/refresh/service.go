// Package refresh performs snapshot reloads off the UI loop. The UI decides
// *when* to reload (the visibility-gated tick); this service only does the
// IO and reports back through the bus.
package refresh

import (
	"context"
	"log"
	"time"

	"wardview/internal/eventbus"
	"wardview/internal/source"
)

// LoadTimeout bounds a single reload, matching the backend's own sync
// timeout.
const LoadTimeout = 30 * time.Second

// Service reloads snapshots on request events.
type Service interface {
	// Reload performs one load synchronously and publishes the outcome.
	Reload(ctx context.Context)
}

// service is the concrete implementation
type service struct {
	bus     eventbus.EventBus
	src     source.Source
	timeout time.Duration
	slot    chan struct{} // single-flight: a second request during a load is dropped
}

// NewService creates a refresh service. It subscribes itself to reload
// requests and source-change notifications.
func NewService(bus eventbus.EventBus, src source.Source) Service {
	s := &service{
		bus:     bus,
		src:     src,
		timeout: LoadTimeout,
		slot:    make(chan struct{}, 1),
	}

	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RefreshRequestedEvent); ok {
			s.tryReload(string(event.Reason))
		}
	})

	bus.Subscribe(eventbus.EventSourceChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SourceChangedEvent); ok {
			s.tryReload("change:" + event.Path)
		}
	})

	return s
}

// tryReload starts a load unless one is already running. Requests never
// queue: a tick that lands mid-load is gone, the next one reloads.
func (s *service) tryReload(reason string) {
	select {
	case s.slot <- struct{}{}:
	default:
		log.Printf("refresh: load in flight, dropping request (%s)", reason)
		return
	}

	go func() {
		defer func() { <-s.slot }()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.Reload(ctx)
	}()
}

// Reload performs one load and publishes SnapshotLoaded or LoadFailed.
func (s *service) Reload(ctx context.Context) {
	start := time.Now()

	snap, err := s.src.Load(ctx)
	if err != nil {
		log.Printf("refresh: load from %s failed: %v", s.src.Origin(), err)
		s.bus.Publish(eventbus.LoadFailedEvent{
			Origin: s.src.Origin(),
			Err:    err,
		})
		return
	}

	elapsed := time.Since(start)
	log.Printf("refresh: loaded %d people, %d entries from %s in %s",
		len(snap.People), len(snap.Entries), s.src.Origin(), elapsed)
	s.bus.Publish(eventbus.SnapshotLoadedEvent{
		Snapshot: snap,
		Elapsed:  elapsed,
	})
}
