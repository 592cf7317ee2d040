package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardview/internal/config"
	"wardview/internal/domain"
	"wardview/internal/eventbus"
	inputtypes "wardview/internal/ui/input/types"
	"wardview/internal/ui/state"
)

// recordingBus captures published events so tests can assert on them
// without the real bus's dispatch goroutines.
type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(event eventbus.DomainEvent) {
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) refreshCount() int {
	n := 0
	for _, e := range b.events {
		if _, ok := e.(eventbus.RefreshRequestedEvent); ok {
			n++
		}
	}
	return n
}

func wardSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		People: []domain.Person{
			{ID: "P001", Name: "Dr. Smith", Role: domain.RolePhysician, Unit: "Cardiology",
				Sync: domain.SyncState{Status: domain.SyncSynced}},
			{ID: "P002", Name: "Nurse Lee", Role: domain.RoleNurse, Unit: "Cardiology",
				Sync: domain.SyncState{Status: domain.SyncPending}},
		},
		Entries: []domain.Entry{
			{ID: 2, Time: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC), Level: domain.LevelError,
				Message: "Practitioner sync failed", ResourceType: "Practitioner", ResourceID: "P002",
				Operation: domain.OpCreate, Attempts: 3,
				Details: map[string]any{"status": "failed"}},
			{ID: 1, Time: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC), Level: domain.LevelInfo,
				Message: "Patient record synced", ResourceType: "Patient", ResourceID: "PT100",
				Operation: domain.OpUpdate},
		},
		Stats:    domain.QueueStats{Pending: 1, Failed: 1},
		LoadedAt: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Origin:   "testdata (jsonl)",
	}
}

func testModel() (*Model, *recordingBus) {
	bus := &recordingBus{}
	return NewModel(bus, config.DefaultConfig()), bus
}

func loadSnapshot(m *Model, snap *domain.Snapshot) {
	m.Update(EventMsg{Event: eventbus.SnapshotLoadedEvent{
		Snapshot: snap,
		Elapsed:  5 * time.Millisecond,
	}})
}

func pressKey(m *Model, s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestRefreshTickSkippedWhenHidden(t *testing.T) {
	m, bus := testModel()

	m.Update(tea.BlurMsg{})
	_, cmd := m.Update(refreshTickMsg(time.Now()))

	assert.Zero(t, bus.refreshCount(), "hidden UI must not request a reload")
	require.NotNil(t, cmd, "timer re-arms even while hidden")
}

func TestRefreshTickFiresWhenVisible(t *testing.T) {
	m, bus := testModel()

	_, cmd := m.Update(refreshTickMsg(time.Now()))

	require.Equal(t, 1, bus.refreshCount())
	evt := bus.events[0].(eventbus.RefreshRequestedEvent)
	assert.Equal(t, eventbus.RefreshTick, evt.Reason)
	require.NotNil(t, cmd, "next interval is armed")
}

func TestFocusRestoresRefreshTicks(t *testing.T) {
	m, bus := testModel()

	m.Update(tea.BlurMsg{})
	m.Update(refreshTickMsg(time.Now()))
	require.Zero(t, bus.refreshCount())

	m.Update(tea.FocusMsg{})
	m.Update(refreshTickMsg(time.Now()))
	assert.Equal(t, 1, bus.refreshCount())
}

func TestManualReloadRequest(t *testing.T) {
	m, bus := testModel()

	pressKey(m, "r")

	require.Equal(t, 1, bus.refreshCount())
	evt := bus.events[0].(eventbus.RefreshRequestedEvent)
	assert.Equal(t, eventbus.RefreshManual, evt.Reason)
}

func TestSnapshotBuildsRosterRows(t *testing.T) {
	m, _ := testModel()

	loadSnapshot(m, wardSnapshot())

	rows := m.state.RosterRows
	require.Len(t, rows, 4)
	assert.Equal(t, state.RowSection, rows[0].Kind)
	assert.Equal(t, "Physicians", rows[0].Section)
	assert.Equal(t, 1, rows[0].Count)
	assert.Equal(t, "P001", rows[1].PersonID)
	assert.Equal(t, "Nurses", rows[2].Section)
	assert.Equal(t, "P002", rows[3].PersonID)
}

func TestFilterNarrowsRowsPerKeystroke(t *testing.T) {
	m, _ := testModel()
	loadSnapshot(m, wardSnapshot())

	pressKey(m, "F")
	pressKey(m, "p")
	require.Len(t, m.state.RosterRows, 4, "'p' still matches both record ids")

	pressKey(m, "h")
	rows := m.state.RosterRows
	require.Len(t, rows, 2, "'ph' narrows to the physician before any submit")
	assert.Equal(t, "Physicians", rows[0].Section)
	assert.Equal(t, "P001", rows[1].PersonID)

	pressKey(m, "y")
	pressKey(m, "s")
	require.Len(t, m.state.RosterRows, 2)
	assert.Equal(t, "phys", m.state.FilterQuery)

	// Backspace widens again, with row order untouched
	pressKey(m, "backspace")
	pressKey(m, "backspace")
	pressKey(m, "backspace")
	rows = m.state.RosterRows
	require.Len(t, rows, 4)
	assert.Equal(t, "Physicians", rows[0].Section)
	assert.Equal(t, "Nurses", rows[2].Section)
}

func TestEscRestoresFilteredRows(t *testing.T) {
	m, _ := testModel()
	loadSnapshot(m, wardSnapshot())

	pressKey(m, "F")
	for _, ch := range []string{"p", "h", "y", "s"} {
		pressKey(m, ch)
	}
	pressKey(m, "enter")
	require.Len(t, m.state.RosterRows, 2, "filter stays applied after leaving the mode")
	require.True(t, m.state.IsFiltered)

	pressKey(m, "esc")
	assert.Len(t, m.state.RosterRows, 4)
	assert.False(t, m.state.IsFiltered)
	assert.Empty(t, m.state.FilterQuery)
}

func TestDoubleToggleSectionRestoresRows(t *testing.T) {
	m, _ := testModel()
	loadSnapshot(m, wardSnapshot())
	before := append([]state.Row(nil), m.state.RosterRows...)

	pressKey(m, "z")
	require.Len(t, m.state.RosterRows, 3, "collapsed section hides its member")

	pressKey(m, "z")
	assert.Equal(t, before, m.state.RosterRows, "second toggle restores the original view")
}

func TestActivityPanelDoubleToggle(t *testing.T) {
	m, _ := testModel()
	loadSnapshot(m, wardSnapshot())

	pressKey(m, "2")
	require.Equal(t, state.TabActivity, m.state.ActiveTab)
	before := append([]state.Row(nil), m.state.ActivityRows...)
	require.Len(t, before, 2)

	pressKey(m, "z")
	require.Greater(t, len(m.state.ActivityRows), 2, "detail lines appear under the entry")
	detail := m.state.ActivityRows[1]
	assert.Equal(t, state.RowDetail, detail.Kind)
	assert.Equal(t, int64(2), detail.EntryID)

	pressKey(m, "z")
	assert.Equal(t, before, m.state.ActivityRows)
}

func TestFailedReloadKeepsLastView(t *testing.T) {
	m, _ := testModel()
	loadSnapshot(m, wardSnapshot())
	before := append([]state.Row(nil), m.state.RosterRows...)

	m.Update(EventMsg{Event: eventbus.LoadFailedEvent{Origin: "testdata", Err: errors.New("disk gone")}})

	assert.Equal(t, before, m.state.RosterRows, "stale rows stay on screen")
	assert.Equal(t, "disk gone", m.state.LoadError)
	assert.False(t, m.state.Loading)
}

func TestTickRetriesAfterFailure(t *testing.T) {
	m, bus := testModel()
	loadSnapshot(m, wardSnapshot())
	m.Update(EventMsg{Event: eventbus.LoadFailedEvent{Origin: "testdata", Err: errors.New("disk gone")}})

	m.Update(refreshTickMsg(time.Now()))

	assert.Equal(t, 1, bus.refreshCount(), "next tick retries the load")
}

func TestReloadPreservesDisclosure(t *testing.T) {
	m, _ := testModel()
	loadSnapshot(m, wardSnapshot())

	pressKey(m, "z") // collapse Physicians

	loadSnapshot(m, wardSnapshot())

	rows := m.state.RosterRows
	require.Len(t, rows, 3)
	assert.Equal(t, state.RowSection, rows[0].Kind)
	assert.Equal(t, "Physicians", rows[0].Section)
	assert.Equal(t, "P002", rows[2].PersonID, "other sections keep their members")
}

func TestSearchJumpsToMatch(t *testing.T) {
	m, _ := testModel()
	loadSnapshot(m, wardSnapshot())

	pressKey(m, "/")
	for _, ch := range []string{"l", "e", "e"} {
		pressKey(m, ch)
	}
	pressKey(m, "enter")

	require.NotEmpty(t, m.state.SearchMatches)
	assert.Equal(t, 3, m.state.SelectedIndex, "cursor lands on Nurse Lee")
	assert.Equal(t, "P002", m.state.RosterRows[m.state.SelectedIndex].PersonID)
}

func TestSortByStatusPutsFailuresFirst(t *testing.T) {
	m, _ := testModel()
	snap := wardSnapshot()
	snap.People = append(snap.People, domain.Person{
		ID: "P003", Name: "Dr. Adams", Role: domain.RolePhysician,
		Sync: domain.SyncState{Status: domain.SyncSynced},
	})
	snap.People[0].Sync = domain.SyncState{Status: domain.SyncFailed, LastError: "409 conflict"}
	loadSnapshot(m, snap)

	// Name order while sorting is untouched
	rows := m.state.RosterRows
	require.Equal(t, "P003", rows[1].PersonID)
	require.Equal(t, "P001", rows[2].PersonID)

	pressKey(m, "s")
	pressKey(m, "j") // role
	pressKey(m, "j") // status, applied immediately
	pressKey(m, "enter")

	rows = m.state.RosterRows
	assert.Equal(t, "P001", rows[1].PersonID, "failed record sorts first")
	assert.Equal(t, "P003", rows[2].PersonID)
}

func TestDirtyQuitAsksFirst(t *testing.T) {
	bus := &recordingBus{}
	cfg := config.DefaultConfig()
	cfg.UISettings.AutosaveOnExit = false
	m := NewModel(bus, cfg)
	loadSnapshot(m, wardSnapshot())

	pressKey(m, "z") // view change with autosave off

	cmd := pressKey(m, "q")
	require.Nil(t, cmd, "confirm prompt holds the quit")
	require.Equal(t, inputtypes.ModeQuitConfirm, m.inputHandler.CurrentMode())

	cmd = pressKey(m, "y")
	require.NotNil(t, cmd, "confirmed quit proceeds")

	var saved bool
	for _, e := range bus.events {
		if _, ok := e.(eventbus.ConfigChangedEvent); ok {
			saved = true
		}
	}
	assert.True(t, saved, "y saves the view settings on the way out")
}

func TestQuitAutosavePublishesConfig(t *testing.T) {
	bus := &recordingBus{}
	cfg := config.DefaultConfig()
	cfg.UISettings.AutosaveOnExit = true
	m := NewModel(bus, cfg)
	loadSnapshot(m, wardSnapshot())

	cmd := pressKey(m, "q")
	require.NotNil(t, cmd, "autosave quits without a prompt")

	var saved *eventbus.ConfigChangedEvent
	for _, e := range bus.events {
		if c, ok := e.(eventbus.ConfigChangedEvent); ok {
			saved = &c
		}
	}
	require.NotNil(t, saved)
	assert.Equal(t, "name", saved.SortMode)
}

func TestWindowSizeSetsViewport(t *testing.T) {
	m, _ := testModel()

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 23, m.state.ViewportHeight)
}

func TestViewRendersRoster(t *testing.T) {
	m, _ := testModel()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	loadSnapshot(m, wardSnapshot())

	out := m.View()
	assert.Contains(t, out, "wardview")
	assert.Contains(t, out, "Physicians")
	assert.Contains(t, out, "Dr. Smith")
}
