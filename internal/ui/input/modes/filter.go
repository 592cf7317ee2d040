package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"wardview/internal/ui/input/types"
)

// FilterMode narrows the list as the query is typed; every keystroke is
// applied immediately, enter just leaves the prompt with the filter live.
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}

// Enter overrides the base Enter to open all sections so matches inside
// collapsed ones are visible
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	return append(actions, types.ExpandSectionsAction{})
}
