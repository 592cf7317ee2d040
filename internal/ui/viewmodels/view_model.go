package viewmodels

import (
	"github.com/charmbracelet/bubbles/textinput"

	"wardview/internal/config"
	"wardview/internal/domain"
	"wardview/internal/ui/state"
	"wardview/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state            *state.AppState
	config           *config.Config
	width            int
	height           int
	inputTransformer *InputTransformer
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config, textInput textinput.Model) *ViewModel {
	return &ViewModel{
		state:            appState,
		config:           cfg,
		inputTransformer: NewInputTransformer(textInput),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetInputMode sets the current input mode
func (vm *ViewModel) SetInputMode(mode InputMode) {
	vm.inputTransformer.SetMode(mode)
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.inputTransformer.textInput = textInput
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	s := vm.state

	people := make(map[string]*domain.Person, len(s.People))
	for i := range s.People {
		people[s.People[i].ID] = &s.People[i]
	}
	entries := make(map[int64]*domain.Entry, len(s.Entries))
	for i := range s.Entries {
		entries[s.Entries[i].ID] = &s.Entries[i]
	}

	// Resolve section disclosure (unknown sections default to open) for
	// every section the row list shows
	sectionOpen := make(map[string]bool)
	for _, row := range s.RosterRows {
		if row.Kind == state.RowSection {
			sectionOpen[row.Section] = s.SectionExpanded(row.Section)
		}
	}

	return views.ViewState{
		Width:           vm.width,
		Height:          vm.height,
		Tab:             s.ActiveTab,
		Rows:            s.CurrentRows(),
		People:          people,
		Entries:         entries,
		SectionOpen:     sectionOpen,
		ExpandedEntries: s.ExpandedEntries,
		RosterCount:     len(s.People),
		ActivityCount:   len(s.Entries),
		SelectedIndex:   s.SelectedIndex,
		ViewportOffset:  s.ViewportOffset,
		ViewportHeight:  s.ViewportHeight,
		Stats:           s.Stats,
		Origin:          s.Origin,
		LoadedAt:        s.LoadedAt,
		Loading:         s.Loading,
		Visible:         s.Visible,
		LoadError:       s.LoadError,
		StatusMessage:   s.StatusMessage,
		ShowHelp:        s.ShowHelp,
		ShowInfo:        s.ShowInfo,
		InfoContent:     s.InfoContent,
		SearchQuery:     s.SearchQuery,
		FilterQuery:     s.FilterQuery,
		IsFiltered:      s.IsFiltered,
		TextInput:       vm.inputTransformer.GetInputText(),
		InputMode:       vm.inputTransformer.GetInputModeString(),
		SortOptionIndex: s.SortOptionIndex,
	}
}
