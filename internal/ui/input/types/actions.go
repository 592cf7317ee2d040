package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode (e.g. text to preload)
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Tab actions
type SwitchTabAction struct {
	Tab string // "roster", "activity", "next"
}

func (a SwitchTabAction) Type() string { return "switch_tab" }

// Disclosure actions
type ToggleRowAction struct{}

func (a ToggleRowAction) Type() string { return "toggle_row" }

type SetAllAction struct {
	Open bool
}

func (a SetAllAction) Type() string { return "set_all" }

type ExpandSectionsAction struct{}

func (a ExpandSectionsAction) Type() string { return "expand_sections" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type ClearSearchAction struct{}

func (a ClearSearchAction) Type() string { return "clear_search" }

type SearchNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a SearchNavigateAction) Type() string { return "search_navigate" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ToggleInfoAction struct{}

func (a ToggleInfoAction) Type() string { return "toggle_info" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type OpenDetailsAction struct{}

func (a OpenDetailsAction) Type() string { return "open_details" }

type OpenLogAction struct{}

func (a OpenLogAction) Type() string { return "open_log" }

type YankAction struct{}

func (a YankAction) Type() string { return "yank" }

// Sort actions
type SortByAction struct {
	Criteria string
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }

// SaveViewAction persists the current view settings to the config file.
type SaveViewAction struct{}

func (a SaveViewAction) Type() string { return "save_view" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
	Save  bool // persist view settings on the way out
}

func (a QuitAction) Type() string { return "quit" }
