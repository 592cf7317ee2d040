package state

import (
	"time"

	"wardview/internal/domain"
)

// Tab identifies the active view.
type Tab int

const (
	TabRoster Tab = iota
	TabActivity
)

// RowKind says what a display row is.
type RowKind int

const (
	RowSection RowKind = iota // roster section header
	RowPerson                 // one roster person
	RowEntry                  // one activity entry
	RowDetail                 // one line of an expanded entry's details
)

// Row is one display line. The row lists are rebuilt whenever data, filter
// or disclosure state changes; cursor and viewport work on indices into
// them, one line per row.
type Row struct {
	Kind     RowKind
	Section  string // RowSection: section name
	Count    int    // RowSection: members shown under it
	PersonID string // RowPerson
	EntryID  int64  // RowEntry, RowDetail
	Text     string // RowDetail: precomputed line
}

// Selectable reports whether the cursor may rest on this row.
func (r Row) Selectable() bool {
	return r.Kind != RowDetail
}

// AppState contains all the application state
type AppState struct {
	// Snapshot data, replaced wholesale on every reload
	People     []domain.Person
	Entries    []domain.Entry
	Stats      domain.QueueStats
	Origin     string
	LoadedAt   time.Time
	Generation int // counts applied snapshots

	// Visibility and refresh bookkeeping
	Visible   bool   // terminal focus; hidden views skip reloads
	Loading   bool   // a reload is in flight (drives the spinner only)
	LoadError string // last failure, cleared by the next successful load

	// View state
	ActiveTab        Tab
	ExpandedSections map[string]bool // roster section name -> open
	ExpandedEntries  map[int64]bool  // activity entry id -> details open

	// Cursor and viewport
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	// Row caches
	RosterRows   []Row
	ActivityRows []Row

	// Popups and status bar
	ShowHelp      bool
	ShowInfo      bool
	InfoContent   string
	StatusMessage string

	// Search and filter state
	SearchQuery     string
	SearchMatches   []int // row indices of matches, ranked
	SearchIndex     int   // current match position
	SortOptionIndex int   // highlighted option in sort mode
	FilterQuery     string
	IsFiltered      bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Visible:          true, // focus reporting only sends changes
		ExpandedSections: make(map[string]bool),
		ExpandedEntries:  make(map[int64]bool),
		ViewportHeight:   20, // Default
	}
}

// ApplySnapshot replaces the displayed data with a freshly loaded export.
// Disclosure state is view state and survives; expanded flags for entries
// that no longer exist are pruned.
func (s *AppState) ApplySnapshot(snap *domain.Snapshot) {
	s.People = snap.People
	s.Entries = snap.Entries
	s.Stats = snap.Stats
	s.Origin = snap.Origin
	s.LoadedAt = snap.LoadedAt
	s.Generation++
	s.Loading = false
	s.LoadError = ""

	live := make(map[int64]bool, len(snap.Entries))
	for _, e := range snap.Entries {
		live[e.ID] = true
	}
	for id := range s.ExpandedEntries {
		if !live[id] {
			delete(s.ExpandedEntries, id)
		}
	}
}

// CurrentRows returns the row list for the active tab.
func (s *AppState) CurrentRows() []Row {
	if s.ActiveTab == TabActivity {
		return s.ActivityRows
	}
	return s.RosterRows
}

// PersonByID looks a person up in the current snapshot.
func (s *AppState) PersonByID(id string) (*domain.Person, bool) {
	for i := range s.People {
		if s.People[i].ID == id {
			return &s.People[i], true
		}
	}
	return nil, false
}

// EntryByID looks an entry up in the current snapshot.
func (s *AppState) EntryByID(id int64) (*domain.Entry, bool) {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i], true
		}
	}
	return nil, false
}

// SectionExpanded reports a section's disclosure state; sections default
// to open the first time they appear.
func (s *AppState) SectionExpanded(name string) bool {
	open, known := s.ExpandedSections[name]
	if !known {
		return true
	}
	return open
}

// ToggleSection flips a roster section between shown and hidden.
func (s *AppState) ToggleSection(name string) {
	s.ExpandedSections[name] = !s.SectionExpanded(name)
}

// ToggleEntry flips one activity entry's detail panel.
func (s *AppState) ToggleEntry(id int64) {
	if s.ExpandedEntries[id] {
		delete(s.ExpandedEntries, id)
	} else {
		s.ExpandedEntries[id] = true
	}
}

// SetAllSections opens or closes every section present in the snapshot.
func (s *AppState) SetAllSections(open bool) {
	for _, p := range s.People {
		s.ExpandedSections[p.Role.SectionName()] = open
	}
}

// SetAllEntries opens or closes every entry's detail panel.
func (s *AppState) SetAllEntries(open bool) {
	if !open {
		s.ExpandedEntries = make(map[int64]bool)
		return
	}
	for _, e := range s.Entries {
		s.ExpandedEntries[e.ID] = true
	}
}

// ClearSearch drops search results and query.
func (s *AppState) ClearSearch() {
	s.SearchQuery = ""
	s.SearchMatches = nil
	s.SearchIndex = 0
}
