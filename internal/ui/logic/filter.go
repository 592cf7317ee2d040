package logic

import (
	"strings"

	"wardview/internal/domain"
)

// Row filtering. A query matches a row when any tracked field contains it,
// case-insensitively; an empty query matches everything. "field:value"
// prefixes narrow the match to one field; an unrecognized prefix is treated
// as plain text.

// MatchesPerson checks a roster row against the filter query. Tracked
// fields: name, id, role, email, phone, unit. Empty fields never match a
// non-empty query.
func MatchesPerson(p *domain.Person, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(filterQuery)

	if rest, ok := strings.CutPrefix(query, "role:"); ok {
		return strings.Contains(strings.ToLower(string(p.Role)), rest)
	}
	if rest, ok := strings.CutPrefix(query, "status:"); ok {
		return matchesSyncStatus(p.Sync.Status, rest)
	}

	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.ID), query) ||
		strings.Contains(strings.ToLower(string(p.Role)), query) ||
		strings.Contains(strings.ToLower(p.Email), query) ||
		strings.Contains(strings.ToLower(p.Phone), query) ||
		strings.Contains(strings.ToLower(p.Unit), query)
}

// MatchesEntry checks an activity row against the filter query. Tracked
// fields: message, resource type, resource id, level, operation.
func MatchesEntry(e *domain.Entry, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(filterQuery)

	if rest, ok := strings.CutPrefix(query, "level:"); ok {
		return matchesLevel(e.Level, rest)
	}
	if rest, ok := strings.CutPrefix(query, "status:"); ok {
		return queueStatusOf(e) == rest
	}

	return strings.Contains(strings.ToLower(e.Message), query) ||
		strings.Contains(strings.ToLower(e.ResourceType), query) ||
		strings.Contains(strings.ToLower(e.ResourceID), query) ||
		strings.Contains(strings.ToLower(string(e.Level)), query) ||
		strings.Contains(strings.ToLower(string(e.Operation)), query)
}

// matchesSyncStatus compares against the person's gateway state. A record
// the queue has never seen has no status and matches nothing.
func matchesSyncStatus(status domain.SyncStatus, filter string) bool {
	switch filter {
	case "pending", "processing", "synced", "failed":
		return string(status) == filter
	case "success":
		return status == domain.SyncSynced
	case "error":
		return status == domain.SyncFailed
	default:
		return strings.Contains(string(status), filter)
	}
}

func matchesLevel(level domain.Level, filter string) bool {
	switch filter {
	case "warn":
		return level == domain.LevelWarning
	default:
		return strings.Contains(string(level), filter)
	}
}

// queueStatusOf lets "status:" work on the feed too, by reading the
// outcome a log entry reports in its details.
func queueStatusOf(e *domain.Entry) string {
	if e.Details == nil {
		return ""
	}
	if v, ok := e.Details["status"].(string); ok {
		return strings.ToLower(v)
	}
	return ""
}
