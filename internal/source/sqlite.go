package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"wardview/internal/domain"
)

// SQLite reads a single-file database export. The handle is opened
// read-only; the viewer never writes to the backend's data.
type SQLite struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens a database export read-only.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &SQLite{path: path, db: db}, nil
}

func (s *SQLite) Origin() string { return s.path + " (sqlite)" }

func (s *SQLite) Paths() []string { return []string{s.path} }

func (s *SQLite) Close() error { return s.db.Close() }

// Load reads people, sync_queue and sync_log and assembles a snapshot.
// The people table is required; the sync tables may be absent in partial
// exports.
func (s *SQLite) Load(ctx context.Context) (*domain.Snapshot, error) {
	people, err := s.readPeople(ctx)
	if err != nil {
		return nil, err
	}

	var entries []entryRecord
	if ok, err := s.hasTable(ctx, "sync_log"); err != nil {
		return nil, err
	} else if ok {
		entries, err = s.readLog(ctx)
		if err != nil {
			return nil, err
		}
	}

	var queue []queueRecord
	if ok, err := s.hasTable(ctx, "sync_queue"); err != nil {
		return nil, err
	} else if ok {
		queue, err = s.readQueue(ctx)
		if err != nil {
			return nil, err
		}
	}

	return assemble(people, entries, queue, s.Origin()), nil
}

func (s *SQLite) hasTable(ctx context.Context, name string) (bool, error) {
	var found string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect schema: %w", err)
	}
	return true, nil
}

func (s *SQLite) readPeople(ctx context.Context) ([]personRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, email, phone, unit, gender, birth_date, last_seen
		 FROM people ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	var people []personRecord
	for rows.Next() {
		var p personRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Email, &p.Phone, &p.Unit,
			&p.Gender, &p.BirthDate, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("scan people: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (s *SQLite) readLog(ctx context.Context) ([]entryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, time, level, message, resource_type, resource_id, operation, attempts, details
		 FROM sync_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query sync_log: %w", err)
	}
	defer rows.Close()

	var entries []entryRecord
	for rows.Next() {
		var e entryRecord
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.Time, &e.Level, &e.Message, &e.ResourceType,
			&e.ResourceID, &e.Operation, &e.Attempts, &details); err != nil {
			return nil, fmt.Errorf("scan sync_log: %w", err)
		}
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				log.Printf("source: bad details JSON on log row %d: %v", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) readQueue(ctx context.Context) ([]queueRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT resource_type, resource_id, status, fhir_id, attempts, last_error, updated_at
		 FROM sync_queue ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query sync_queue: %w", err)
	}
	defer rows.Close()

	var queue []queueRecord
	for rows.Next() {
		var q queueRecord
		if err := rows.Scan(&q.ResourceType, &q.ResourceID, &q.Status, &q.FHIRID,
			&q.Attempts, &q.LastError, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sync_queue: %w", err)
		}
		queue = append(queue, q)
	}
	return queue, rows.Err()
}
