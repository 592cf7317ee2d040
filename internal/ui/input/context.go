package input

import (
	"wardview/internal/ui/logic"
	"wardview/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State    *state.AppState
	SortMode logic.SortMode
	Dirty    bool // view settings changed and autosave is off
}

func (c *ModelContext) row() (state.Row, bool) {
	rows := c.State.CurrentRows()
	idx := c.State.SelectedIndex
	if idx < 0 || idx >= len(rows) {
		return state.Row{}, false
	}
	return rows[idx], true
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalRows returns the number of rows in the active list
func (c *ModelContext) TotalRows() int {
	return len(c.State.CurrentRows())
}

// OnSection reports whether the cursor rests on a section header
func (c *ModelContext) OnSection() bool {
	row, ok := c.row()
	return ok && row.Kind == state.RowSection
}

// CurrentSectionName returns the section under the cursor, walking up from
// a person row to its header
func (c *ModelContext) CurrentSectionName() string {
	row, ok := c.row()
	if !ok {
		return ""
	}
	switch row.Kind {
	case state.RowSection:
		return row.Section
	case state.RowPerson:
		if p, ok := c.State.PersonByID(row.PersonID); ok {
			return p.Role.SectionName()
		}
	}
	return ""
}

// CurrentPersonID returns the person under the cursor, if any
func (c *ModelContext) CurrentPersonID() string {
	row, ok := c.row()
	if !ok || row.Kind != state.RowPerson {
		return ""
	}
	return row.PersonID
}

// CurrentEntryID returns the activity entry under the cursor, if any
func (c *ModelContext) CurrentEntryID() (int64, bool) {
	row, ok := c.row()
	if !ok || (row.Kind != state.RowEntry && row.Kind != state.RowDetail) {
		return 0, false
	}
	return row.EntryID, true
}

// OnRosterTab reports whether the roster tab is active
func (c *ModelContext) OnRosterTab() bool {
	return c.State.ActiveTab == state.TabRoster
}

// SearchQuery returns the current search query
func (c *ModelContext) SearchQuery() string {
	return c.State.SearchQuery
}

// FilterQuery returns the live filter query
func (c *ModelContext) FilterQuery() string {
	return c.State.FilterQuery
}

// CurrentSort returns the current sort mode key
func (c *ModelContext) CurrentSort() string {
	return c.SortMode.String()
}

// ViewDirty reports whether quitting now would lose view changes
func (c *ModelContext) ViewDirty() bool {
	return c.Dirty
}
