package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardview/internal/ui/input/types"
	"wardview/internal/ui/state"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testContext() *ModelContext {
	return &ModelContext{State: state.NewAppState()}
}

func TestNormalModeNavigation(t *testing.T) {
	h := New()
	ctx := testContext()

	actions, _ := h.HandleKey(keyRunes("j"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.NavigateAction{Direction: "down"}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.NavigateAction{Direction: "up"}, actions[0])
}

func TestFilterModeAppliesEveryKeystroke(t *testing.T) {
	h := New()
	ctx := testContext()

	// F opens filter mode and expands sections so matches are visible
	actions, _ := h.HandleKey(keyRunes("F"), ctx)
	assert.Equal(t, types.ModeFilter, h.CurrentMode())
	assert.Contains(t, actions, types.Action(types.ExpandSectionsAction{}))

	// Every typed character surfaces as an immediate text update
	actions, _ = h.HandleKey(keyRunes("p"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "p"}, actions[0])

	actions, _ = h.HandleKey(keyRunes("h"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "ph"}, actions[0])

	// Backspace too
	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.UpdateTextAction{Text: "p"}, actions[0])
}

func TestFilterModeResumesExistingQuery(t *testing.T) {
	h := New()
	ctx := testContext()
	ctx.State.FilterQuery = "phys"

	h.HandleKey(keyRunes("F"), ctx)
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "phys", h.TextInput().Value())
}

func TestFilterSubmitReturnsToNormal(t *testing.T) {
	h := New()
	ctx := testContext()

	h.HandleKey(keyRunes("F"), ctx)
	h.HandleKey(keyRunes("x"), ctx)

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	require.NotEmpty(t, actions)
	assert.Equal(t, types.SubmitTextAction{Text: "x", Mode: types.ModeFilter}, actions[0])
}

func TestEscCancelsTextMode(t *testing.T) {
	h := New()
	ctx := testContext()

	h.HandleKey(keyRunes("/"), ctx)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Contains(t, actions, types.Action(types.CancelTextAction{}))
}

func TestQuitAsksWhenViewDirty(t *testing.T) {
	h := New()
	ctx := testContext()
	ctx.Dirty = true

	h.HandleKey(keyRunes("q"), ctx)
	assert.Equal(t, types.ModeQuitConfirm, h.CurrentMode())

	actions, _ := h.HandleKey(keyRunes("y"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.QuitAction{Save: true}, actions[0])
}

func TestQuitDirectWhenClean(t *testing.T) {
	h := New()
	ctx := testContext()

	actions, _ := h.HandleKey(keyRunes("q"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.QuitAction{}, actions[0])
}

func TestSortModeCyclesOptions(t *testing.T) {
	h := New()
	ctx := testContext()

	h.HandleKey(keyRunes("s"), ctx)
	assert.Equal(t, types.ModeSort, h.CurrentMode())

	actions, _ := h.HandleKey(keyRunes("j"), ctx)
	assert.Contains(t, actions, types.Action(types.SortByAction{Criteria: "role"}))

	// Enter keeps the choice and leaves sort mode
	h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
