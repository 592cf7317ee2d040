package logic

import (
	"sort"
	"strings"

	"wardview/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByName SortMode = iota
	SortByRole
	SortByStatus
)

// String returns the config/display name of the mode.
func (m SortMode) String() string {
	switch m {
	case SortByRole:
		return "role"
	case SortByStatus:
		return "status"
	default:
		return "name"
	}
}

// ParseSortMode maps user or config input to a mode; anything else means
// sort by name.
func ParseSortMode(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "role", "r":
		return SortByRole
	case "status", "s":
		return SortByStatus
	default:
		return SortByName
	}
}

// SortOptions are the choices offered in sort mode, in menu order.
var SortOptions = []SortMode{SortByName, SortByRole, SortByStatus}

// SortPeople orders roster rows in place. Sorting is stable so export
// order breaks ties; the activity feed is never resorted here, it stays
// newest first.
func SortPeople(people []domain.Person, mode SortMode) {
	switch mode {
	case SortByRole:
		sort.SliceStable(people, func(i, j int) bool {
			ri, rj := roleRank(people[i].Role), roleRank(people[j].Role)
			if ri != rj {
				return ri < rj
			}
			return strings.ToLower(people[i].Name) < strings.ToLower(people[j].Name)
		})
	case SortByStatus:
		sort.SliceStable(people, func(i, j int) bool {
			pi, pj := statusRank(people[i].Sync.Status), statusRank(people[j].Sync.Status)
			if pi != pj {
				return pi > pj // most urgent first
			}
			return strings.ToLower(people[i].Name) < strings.ToLower(people[j].Name)
		})
	default:
		sort.SliceStable(people, func(i, j int) bool {
			return strings.ToLower(people[i].Name) < strings.ToLower(people[j].Name)
		})
	}
}

func roleRank(r domain.Role) int {
	for i, role := range domain.RoleOrder {
		if role == r {
			return i
		}
	}
	return len(domain.RoleOrder)
}

// statusRank puts records needing attention on top: failures, then the
// in-flight states, then the settled ones.
func statusRank(s domain.SyncStatus) int {
	switch s {
	case domain.SyncFailed:
		return 3
	case domain.SyncProcessing:
		return 2
	case domain.SyncPending:
		return 1
	default:
		return 0
	}
}
