package domain

import (
	"sort"
	"strings"
	"time"
)

// Role classifies a person on the ward roster.
type Role string

const (
	RolePhysician  Role = "physician"
	RoleNurse      Role = "nurse"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
	RolePatient    Role = "patient"
)

// RoleOrder is the display order of roster sections.
var RoleOrder = []Role{RolePhysician, RoleNurse, RoleTechnician, RoleAdmin, RolePatient}

// SectionName returns the roster section header for a role.
func (r Role) SectionName() string {
	switch r {
	case RolePhysician:
		return "Physicians"
	case RoleNurse:
		return "Nurses"
	case RoleTechnician:
		return "Technicians"
	case RoleAdmin:
		return "Administration"
	case RolePatient:
		return "Patients"
	default:
		return "Other"
	}
}

// NormalizeRole maps free-form role text from an export to a Role.
// Unrecognized values come back as RoleAdmin so nobody drops off the roster.
func NormalizeRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physician", "doctor", "dr":
		return RolePhysician
	case "nurse":
		return RoleNurse
	case "technician", "tech":
		return RoleTechnician
	case "patient":
		return RolePatient
	default:
		return RoleAdmin
	}
}

// SyncStatus is the FHIR gateway's view of a record.
type SyncStatus string

const (
	SyncPending    SyncStatus = "pending"
	SyncProcessing SyncStatus = "processing"
	SyncSynced     SyncStatus = "synced"
	SyncFailed     SyncStatus = "failed"
)

// SyncState carries the last known sync outcome for a person's record.
type SyncState struct {
	Status      SyncStatus
	FHIRID      string // gateway-assigned id, "" until first success
	Attempts    int
	LastError   string
	LastAttempt time.Time
}

// Person is one row of the ward roster: staff or patient.
type Person struct {
	ID        string // backend identifier, e.g. "P001"
	Name      string
	Role      Role
	Email     string
	Phone     string
	Unit      string // ward/department, "" if unassigned
	Gender    string
	BirthDate string // as exported, not parsed
	LastSeen  time.Time
	Sync      SyncState
}

// Level is the severity of an activity entry.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Op is the sync operation an activity entry describes.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Entry is one line of the sync activity feed.
type Entry struct {
	ID           int64
	Time         time.Time
	Level        Level
	Message      string
	ResourceType string // FHIR resource kind as opaque text, e.g. "Patient"
	ResourceID   string
	Operation    Op
	Attempts     int
	Details      map[string]any // raw structured payload from the export
}

// QueueStats summarizes the sync queue at export time.
type QueueStats struct {
	Pending    int
	Processing int
	Synced     int
	Failed     int
}

// Total returns the number of queue items across all states.
func (s QueueStats) Total() int {
	return s.Pending + s.Processing + s.Synced + s.Failed
}

// Snapshot is one complete read of the backend export. A reload replaces
// the previous snapshot wholesale; nothing is merged.
type Snapshot struct {
	People   []Person
	Entries  []Entry
	Stats    QueueStats
	LoadedAt time.Time
	Origin   string // human-readable source description
}

// SortEntriesNewestFirst orders the activity feed for display. Ties keep
// their relative order so repeated loads render identically.
func SortEntriesNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})
}
