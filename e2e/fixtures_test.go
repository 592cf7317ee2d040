//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fixturePerson mirrors one roster.jsonl line as the backend exports it
type fixturePerson struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Unit  string `json:"unit"`
}

// fixtureEntry mirrors one activity.jsonl line
type fixtureEntry struct {
	ID           int64  `json:"id"`
	Time         string `json:"time"`
	Level        string `json:"level"`
	Message      string `json:"message"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	Operation    string `json:"operation"`
	Attempts     int    `json:"attempts"`
}

// fixtureQueue mirrors one queue.jsonl line
type fixtureQueue struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	Status       string `json:"status"`
	FHIRID       string `json:"fhir_id"`
	Attempts     int    `json:"attempts"`
	LastError    string `json:"last_error"`
}

// CreateTestWorkspace creates a temporary directory for a ward export
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "wardview-e2e-*")
	if err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	tf.workspace = dir
	return dir, nil
}

// WriteRoster writes roster.jsonl into the workspace
func (tf *TUITestFramework) WriteRoster(people ...fixturePerson) error {
	return writeJSONL(filepath.Join(tf.workspace, "roster.jsonl"), toAny(people))
}

// WriteActivity writes activity.jsonl into the workspace
func (tf *TUITestFramework) WriteActivity(entries ...fixtureEntry) error {
	return writeJSONL(filepath.Join(tf.workspace, "activity.jsonl"), toAny(entries))
}

// WriteQueue writes queue.jsonl into the workspace
func (tf *TUITestFramework) WriteQueue(rows ...fixtureQueue) error {
	return writeJSONL(filepath.Join(tf.workspace, "queue.jsonl"), toAny(rows))
}

// WriteDefaultWard writes the standard two-person export most scenarios
// start from: one physician, one nurse, a little sync activity
func (tf *TUITestFramework) WriteDefaultWard() error {
	if err := tf.WriteRoster(
		fixturePerson{ID: "P001", Name: "Dr. Smith", Role: "physician", Email: "a@x.com", Phone: "555-0101", Unit: "Cardiology"},
		fixturePerson{ID: "P002", Name: "Nurse Lee", Role: "nurse", Email: "b@x.com", Phone: "555-0102", Unit: "Cardiology"},
	); err != nil {
		return err
	}
	if err := tf.WriteActivity(
		fixtureEntry{ID: 1, Time: "2026-08-20T10:00:00Z", Level: "info", Message: "Patient record synced", ResourceType: "Patient", ResourceID: "P002", Operation: "update", Attempts: 1},
		fixtureEntry{ID: 2, Time: "2026-08-20T10:05:00Z", Level: "error", Message: "Gateway timeout", ResourceType: "Practitioner", ResourceID: "P001", Operation: "create", Attempts: 3},
	); err != nil {
		return err
	}
	return tf.WriteQueue(
		fixtureQueue{ResourceType: "Patient", ResourceID: "P002", Status: "synced", FHIRID: "fhir-2", Attempts: 1},
		fixtureQueue{ResourceType: "Practitioner", ResourceID: "P001", Status: "failed", Attempts: 3, LastError: "gateway timeout"},
	)
}

// writeJSONL writes one JSON document per line, replacing the file whole
// the same way the backend export job does
func writeJSONL(path string, records []any) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			f.Close()
			return fmt.Errorf("encode record: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func toAny[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
