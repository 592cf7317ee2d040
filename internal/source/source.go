// Package source reads ward exports produced by the hospital backend and
// turns them into snapshots. Three formats are supported: JSONL and YAML
// directories, and a single SQLite database file.
package source

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wardview/internal/domain"
)

// Source is one readable export. Load always produces a complete snapshot;
// callers replace their previous one with it.
type Source interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Origin() string
	Paths() []string // files a watcher should follow
	Close() error
}

// Export file names inside a data directory.
const (
	RosterJSONL   = "roster.jsonl"
	ActivityJSONL = "activity.jsonl"
	QueueJSONL    = "queue.jsonl"
	RosterYAML    = "roster.yaml"
	ActivityYAML  = "activity.yaml"
	QueueYAML     = "queue.yaml"
)

// Detect picks a Source implementation for the given path: a .db/.sqlite
// file, or a directory holding JSONL or YAML exports.
func Detect(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".db", ".sqlite", ".sqlite3":
			return OpenSQLite(path)
		}
		return nil, fmt.Errorf("unsupported export file: %s", path)
	}

	if exists(filepath.Join(path, RosterJSONL)) || exists(filepath.Join(path, ActivityJSONL)) {
		return NewJSONL(path), nil
	}
	if exists(filepath.Join(path, RosterYAML)) || exists(filepath.Join(path, ActivityYAML)) {
		return NewYAML(path), nil
	}

	return nil, fmt.Errorf("no ward export found in %s", path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// personRecord is one roster line as the backend writes it.
type personRecord struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Role      string `json:"role" yaml:"role"`
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	Unit      string `json:"unit" yaml:"unit"`
	Gender    string `json:"gender" yaml:"gender"`
	BirthDate string `json:"birth_date" yaml:"birth_date"`
	LastSeen  string `json:"last_seen" yaml:"last_seen"`
}

// entryRecord is one sync-log line.
type entryRecord struct {
	ID           int64          `json:"id" yaml:"id"`
	Time         string         `json:"time" yaml:"time"`
	Level        string         `json:"level" yaml:"level"`
	Message      string         `json:"message" yaml:"message"`
	ResourceType string         `json:"resource_type" yaml:"resource_type"`
	ResourceID   string         `json:"resource_id" yaml:"resource_id"`
	Operation    string         `json:"operation" yaml:"operation"`
	Attempts     int            `json:"attempts" yaml:"attempts"`
	Details      map[string]any `json:"details" yaml:"details"`
}

// queueRecord is one sync-queue line; it carries the per-record gateway state.
type queueRecord struct {
	ResourceType string `json:"resource_type" yaml:"resource_type"`
	ResourceID   string `json:"resource_id" yaml:"resource_id"`
	Status       string `json:"status" yaml:"status"`
	FHIRID       string `json:"fhir_id" yaml:"fhir_id"`
	Attempts     int    `json:"attempts" yaml:"attempts"`
	LastError    string `json:"last_error" yaml:"last_error"`
	UpdatedAt    string `json:"updated_at" yaml:"updated_at"`
}

// assemble joins the three record sets into a snapshot: queue state is
// folded into people by resource id, stats are tallied from the queue, and
// the feed is ordered newest first.
func assemble(people []personRecord, entries []entryRecord, queue []queueRecord, origin string) *domain.Snapshot {
	type qstate struct {
		state domain.SyncState
		at    time.Time
	}
	latest := make(map[string]qstate, len(queue))
	var stats domain.QueueStats

	for _, q := range queue {
		status := normalizeStatus(q.Status)
		switch status {
		case domain.SyncPending:
			stats.Pending++
		case domain.SyncProcessing:
			stats.Processing++
		case domain.SyncSynced:
			stats.Synced++
		case domain.SyncFailed:
			stats.Failed++
		}

		at := parseTime(q.UpdatedAt)
		prev, ok := latest[q.ResourceID]
		if ok && prev.at.After(at) {
			continue
		}
		latest[q.ResourceID] = qstate{
			state: domain.SyncState{
				Status:      status,
				FHIRID:      q.FHIRID,
				Attempts:    q.Attempts,
				LastError:   q.LastError,
				LastAttempt: at,
			},
			at: at,
		}
	}

	snap := &domain.Snapshot{
		People:   make([]domain.Person, 0, len(people)),
		Entries:  make([]domain.Entry, 0, len(entries)),
		Stats:    stats,
		LoadedAt: time.Now(),
		Origin:   origin,
	}

	for _, p := range people {
		person := domain.Person{
			ID:        p.ID,
			Name:      p.Name,
			Role:      domain.NormalizeRole(p.Role),
			Email:     p.Email,
			Phone:     p.Phone,
			Unit:      p.Unit,
			Gender:    p.Gender,
			BirthDate: p.BirthDate,
			LastSeen:  parseTime(p.LastSeen),
		}
		if q, ok := latest[p.ID]; ok {
			person.Sync = q.state
		}
		snap.People = append(snap.People, person)
	}

	for _, e := range entries {
		snap.Entries = append(snap.Entries, domain.Entry{
			ID:           e.ID,
			Time:         parseTime(e.Time),
			Level:        normalizeLevel(e.Level),
			Message:      e.Message,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			Operation:    domain.Op(strings.ToLower(e.Operation)),
			Attempts:     e.Attempts,
			Details:      e.Details,
		})
	}
	domain.SortEntriesNewestFirst(snap.Entries)

	return snap
}

func normalizeStatus(s string) domain.SyncStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return domain.SyncPending
	case "processing":
		return domain.SyncProcessing
	case "success", "synced":
		return domain.SyncSynced
	case "failed", "error":
		return domain.SyncFailed
	default:
		return ""
	}
}

func normalizeLevel(s string) domain.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return domain.LevelDebug
	case "warning", "warn":
		return domain.LevelWarning
	case "error":
		return domain.LevelError
	default:
		return domain.LevelInfo
	}
}

// timeFormats covers what the backend emits: RFC3339 plus the plainer
// datetime and date forms older exports used.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	log.Printf("source: unparseable timestamp %q", s)
	return time.Time{}
}
