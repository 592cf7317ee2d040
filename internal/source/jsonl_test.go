package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardview/internal/domain"
)

const rosterFixture = `{"id":"P001","name":"Dr. Smith","role":"Physician","email":"smith@example.org","phone":"555-0101","unit":"Cardiology"}
{"id":"P002","name":"Nurse Lee","role":"Nurse","email":"lee@example.org","phone":"555-0102","unit":"Cardiology"}
{"id":"PT100","name":"Ann Jones","role":"patient","email":"","phone":"555-0200","unit":"Ward B"}
`

const activityFixture = `{"id":1,"time":"2026-08-21T08:00:00Z","level":"info","message":"Patient record synced","resource_type":"Patient","resource_id":"PT100","operation":"update","details":{"fhir_id":"abc-1"}}
{"id":2,"time":"2026-08-21T08:05:00Z","level":"error","message":"Practitioner sync failed","resource_type":"Practitioner","resource_id":"P002","operation":"create","attempts":3,"details":{"status_code":500}}
`

const queueFixture = `{"resource_type":"Practitioner","resource_id":"P002","status":"failed","attempts":3,"last_error":"HTTP 500","updated_at":"2026-08-21T08:05:00Z"}
{"resource_type":"Patient","resource_id":"PT100","status":"success","fhir_id":"abc-1","updated_at":"2026-08-21T08:00:00Z"}
`

func TestJSONLLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RosterJSONL, rosterFixture)
	writeFile(t, dir, ActivityJSONL, activityFixture)
	writeFile(t, dir, QueueJSONL, queueFixture)

	snap, err := NewJSONL(dir).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.People, 3)
	assert.Equal(t, "Dr. Smith", snap.People[0].Name)
	assert.Equal(t, domain.RolePhysician, snap.People[0].Role)
	assert.Equal(t, domain.SyncFailed, snap.People[1].Sync.Status)
	assert.Equal(t, "HTTP 500", snap.People[1].Sync.LastError)
	assert.Equal(t, domain.SyncSynced, snap.People[2].Sync.Status)

	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "Practitioner sync failed", snap.Entries[0].Message) // newest first
	assert.Equal(t, float64(500), snap.Entries[0].Details["status_code"])

	assert.Equal(t, domain.QueueStats{Synced: 1, Failed: 1}, snap.Stats)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestJSONLLoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RosterJSONL,
		`{"id":"P001","name":"Dr. Smith","role":"doctor"}
this line is not json
{"id":"P002","name":"Nurse Lee","role":"nurse"}
`)

	snap, err := NewJSONL(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.People, 2)
	assert.Equal(t, "P001", snap.People[0].ID)
	assert.Equal(t, "P002", snap.People[1].ID)
}

func TestJSONLLoadOptionalFilesAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RosterJSONL, rosterFixture)

	snap, err := NewJSONL(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.People, 3)
	assert.Empty(t, snap.Entries)
	assert.Zero(t, snap.Stats.Total())
}

func TestJSONLLoadMissingRoster(t *testing.T) {
	_, err := NewJSONL(t.TempDir()).Load(context.Background())
	require.Error(t, err)
}

func TestJSONLLoadPreservesRowOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RosterJSONL, rosterFixture)

	snap, err := NewJSONL(dir).Load(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, p := range snap.People {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"P001", "P002", "PT100"}, ids)
}
