package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wardview/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyTab:
		return []types.Action{types.SwitchTabAction{Tab: "next"}}, true

	case tea.KeyEnter:
		// Enter toggles the section or entry panel under the cursor
		return []types.Action{types.ToggleRowAction{}}, true
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case " ", "z":
		return []types.Action{types.ToggleRowAction{}}, true

	case "e":
		return []types.Action{types.SetAllAction{Open: true}}, true

	case "c":
		return []types.Action{types.SetAllAction{Open: false}}, true

	case "1":
		return []types.Action{types.SwitchTabAction{Tab: "roster"}}, true

	case "2":
		return []types.Action{types.SwitchTabAction{Tab: "activity"}}, true

	case "r":
		// Manual reload, same event the timer publishes
		return []types.Action{types.RefreshAction{}}, true

	case "/":
		// Enter search mode
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "ctrl+f", "F", "f":
		// Enter filter mode, resuming the live query if one is set
		return []types.Action{types.ChangeModeAction{
			Mode: types.ModeFilter,
			Data: ctx.FilterQuery(),
		}}, true

	case "n":
		// Navigate to next search result
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "next"}}, true
		}
		return nil, true // Consume the key even if no action

	case "N":
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "prev"}}, true
		}
		return nil, true

	case "s":
		// Sort mode (roster ordering)
		if ctx.OnRosterTab() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true
		}
		return nil, true

	case "o":
		// Open entry details in the pager
		if _, ok := ctx.CurrentEntryID(); ok {
			return []types.Action{types.OpenDetailsAction{}}, true
		}
		return nil, true

	case "y":
		// Copy the row under the cursor
		return []types.Action{types.YankAction{}}, true

	case "w":
		// Write view settings (sections, sort) to the config file
		return []types.Action{types.SaveViewAction{}}, true

	case "H":
		return []types.Action{types.OpenHelpPagerAction{}}, true

	case "L":
		return []types.Action{types.OpenLogAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "i", "I":
		return []types.Action{types.ToggleInfoAction{}}, true

	case "esc":
		// Drop the filter first, the search highlight second
		if ctx.FilterQuery() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		if ctx.SearchQuery() != "" {
			return []types.Action{types.ClearSearchAction{}}, true
		}
		return nil, true // Consume the key even if no action

	case "q":
		// Quit, via the confirm prompt when view changes would be lost
		if ctx.ViewDirty() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeQuitConfirm}}, true
		}
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		} else {
			// First g, wait for next key
			m.lastKeyWasG = true
			m.lastGTime = time.Now()
			return nil, true // consume the key but don't do anything
		}

	case "G":
		// G - go to bottom
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		if m.lastKeyWasG && msg.String() != "g" {
			m.lastKeyWasG = false
		}
	}

	return nil, false
}
