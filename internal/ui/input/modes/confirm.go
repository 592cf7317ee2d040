package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"wardview/internal/ui/input/types"
)

// ConfirmMode asks whether to save changed view settings before quitting.
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "quit-confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		// Stay in the app
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y":
		// Save and quit
		return []types.Action{
			types.QuitAction{Save: true},
		}, true
	case "n", "N":
		// Quit without saving
		return []types.Action{
			types.QuitAction{},
		}, true
	}

	return nil, false
}
