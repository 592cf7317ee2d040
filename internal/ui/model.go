package ui

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wardview/internal/config"
	"wardview/internal/domain"
	"wardview/internal/eventbus"
	"wardview/internal/ui/handlers"
	"wardview/internal/ui/input"
	inputtypes "wardview/internal/ui/input/types"
	"wardview/internal/ui/logic"
	"wardview/internal/ui/state"
	"wardview/internal/ui/viewmodels"
	"wardview/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	currentSort logic.SortMode // current roster sort
	dirty       bool           // roster sections or sort changed since last save
	inPagerMode bool           // tracks if we're currently in pager mode
	logPath     string         // application log file, shown by L

	// Handlers
	navigator    *logic.Navigator       // navigation and viewport handler
	renderer     *views.Renderer        // view renderer
	eventHandler *handlers.EventHandler // event processing handler
	viewModel    *viewmodels.ViewModel  // view model for rendering
	inputHandler *input.Handler         // input handling
	pagerOps     *PagerOps              // external pager handler
	helpRender   *HelpRenderer          // pager help content

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	appState := state.NewAppState()

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		currentSort:  logic.ParseSortMode(cfg.UISettings.SortMode),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		pagerOps:     NewPagerOps(),
		helpRender:   NewHelpRenderer(),
	}

	// Rebuild rows after every snapshot. The first one honors the
	// expand_details setting; later reloads keep whatever the user has
	// opened or closed since.
	m.eventHandler = handlers.NewEventHandler(appState, func() {
		if appState.Generation == 1 && cfg.UISettings.ExpandDetails {
			appState.SetAllEntries(true)
		}
		m.updateRows()
		m.clampSelection()
	})

	// Create view model with a placeholder text input (actual one is in input handler)
	placeholderTextInput := textinput.New()
	m.viewModel = viewmodels.NewViewModel(appState, cfg, placeholderTextInput)

	// Restore section disclosure from config
	for name, open := range cfg.ExpandedSections {
		appState.ExpandedSections[name] = open
	}

	m.updateRows()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pagerOps != nil {
		m.pagerOps.SetProgram(p)
	}
}

// SetLogPath points the L key at the application log file.
func (m *Model) SetLogPath(path string) {
	m.logPath = path
}

// syncNavigatorState updates the navigator with current model state
func (m *Model) syncNavigatorState() {
	m.navigator.UpdateState(
		m.state.SelectedIndex,
		m.state.ViewportOffset,
		m.state.ViewportHeight,
		len(m.state.CurrentRows()),
	)
}

// Init returns the initial commands: the animation loop and the reload timer
func (m *Model) Init() tea.Cmd {
	// Initialize viewport with reasonable defaults
	m.state.ViewportHeight = 20 // Will be updated on first WindowSizeMsg
	return tea.Batch(tick(), m.scheduleRefresh())
}

// scheduleRefresh arms the reload timer for one interval
func (m *Model) scheduleRefresh() tea.Cmd {
	interval := m.config.Interval
	if interval <= 0 {
		interval = config.DefaultInterval
	}
	return tea.Tick(time.Duration(interval)*time.Second, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()

	case tea.FocusMsg:
		m.state.Visible = true

	case tea.BlurMsg:
		// Reload ticks are skipped until focus returns
		m.state.Visible = false

	case tea.KeyMsg:
		// Handle info/help popups first
		if m.state.ShowInfo {
			switch msg.String() {
			case "esc", "i", "q":
				m.state.ShowInfo = false
				m.state.InfoContent = ""
				return m, nil
			}
		}

		if m.state.ShowHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.state.ShowHelp = false
				return m, nil
			}
		}

		// Handle input through the handler
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		// Process actions
		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

		// Update text input in view model if in text mode
		if m.inputHandler.TextInput() != nil {
			m.viewModel.UpdateTextInput(*m.inputHandler.TextInput())
		}

		return m, tea.Batch(cmds...)

	default:
		// Handle non-keyboard messages
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			// Update text input in view model if in text mode
			if m.inputHandler.TextInput() != nil {
				m.viewModel.UpdateTextInput(*m.inputHandler.TextInput())
			}
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}

	return m, nil
}

// inputContext snapshots what the key handlers need to decide
func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		State:    m.state,
		SortMode: m.currentSort,
		Dirty:    m.dirty && !m.config.UISettings.AutosaveOnExit,
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Update view model with current UI state
	m.viewModel.SetDimensions(m.width, m.height)

	// Use input handler's state
	if m.inputHandler != nil {
		var viewModelMode viewmodels.InputMode
		switch m.inputHandler.CurrentMode() {
		case inputtypes.ModeNormal:
			viewModelMode = viewmodels.InputModeNormal
		case inputtypes.ModeSearch:
			viewModelMode = viewmodels.InputModeSearch
		case inputtypes.ModeFilter:
			viewModelMode = viewmodels.InputModeFilter
		case inputtypes.ModeSort:
			viewModelMode = viewmodels.InputModeSort
		case inputtypes.ModeQuitConfirm:
			viewModelMode = viewmodels.InputModeQuitConfirm
		}
		m.viewModel.SetInputMode(viewModelMode)

		// Use input handler's text input if available
		if ti := m.inputHandler.TextInput(); ti != nil {
			m.viewModel.UpdateTextInput(*ti)
		}
	}

	// Build view state and render
	vstate := m.viewModel.BuildViewState()
	return m.renderer.Render(vstate)
}

// updateRows rebuilds both display row lists from the current snapshot,
// filter, sort and disclosure state. Row order never depends on the
// filter; it only hides rows.
func (m *Model) updateRows() {
	s := m.state

	// Roster: people sorted, then grouped into role sections
	people := make([]domain.Person, len(s.People))
	copy(people, s.People)
	logic.SortPeople(people, m.currentSort)

	// Section order is the fixed role order; anything unrecognized
	// trails in encounter order
	roles := make([]domain.Role, 0, len(domain.RoleOrder)+1)
	roles = append(roles, domain.RoleOrder...)
	known := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		known[r] = true
	}
	for _, p := range people {
		if !known[p.Role] {
			known[p.Role] = true
			roles = append(roles, p.Role)
		}
	}

	rosterRows := make([]state.Row, 0, len(people)+len(roles))
	for _, role := range roles {
		var members []domain.Person
		for _, p := range people {
			if p.Role != role {
				continue
			}
			if s.IsFiltered && !logic.MatchesPerson(&p, s.FilterQuery) {
				continue
			}
			members = append(members, p)
		}
		if len(members) == 0 {
			continue
		}
		name := role.SectionName()
		rosterRows = append(rosterRows, state.Row{Kind: state.RowSection, Section: name, Count: len(members)})
		if s.SectionExpanded(name) {
			for _, p := range members {
				rosterRows = append(rosterRows, state.Row{Kind: state.RowPerson, Section: name, PersonID: p.ID})
			}
		}
	}
	s.RosterRows = rosterRows

	// Activity: entries in snapshot order (newest first), each with its
	// detail panel when expanded
	activityRows := make([]state.Row, 0, len(s.Entries))
	for i := range s.Entries {
		e := &s.Entries[i]
		if s.IsFiltered && !logic.MatchesEntry(e, s.FilterQuery) {
			continue
		}
		activityRows = append(activityRows, state.Row{Kind: state.RowEntry, EntryID: e.ID})
		if s.ExpandedEntries[e.ID] {
			for _, line := range entryDetailLines(e) {
				activityRows = append(activityRows, state.Row{Kind: state.RowDetail, EntryID: e.ID, Text: line})
			}
		}
	}
	s.ActivityRows = activityRows
}

// entryDetailLines renders the expanded panel under an activity entry
func entryDetailLines(e *domain.Entry) []string {
	var lines []string
	if !e.Time.IsZero() {
		lines = append(lines, fmt.Sprintf("time: %s", e.Time.Format("2006-01-02 15:04:05")))
	}
	if e.ResourceType != "" || e.ResourceID != "" {
		lines = append(lines, fmt.Sprintf("resource: %s/%s", e.ResourceType, e.ResourceID))
	}
	if e.Operation != "" {
		lines = append(lines, fmt.Sprintf("operation: %s", e.Operation))
	}
	if e.Attempts > 0 {
		lines = append(lines, fmt.Sprintf("attempts: %d", e.Attempts))
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %v", k, e.Details[k]))
		}
	}
	return lines
}

// updateViewportHeight recomputes how many rows fit the terminal
func (m *Model) updateViewportHeight() {
	// Account for title, tabs, status, help line and main padding
	reservedLines := 7

	m.state.ViewportHeight = m.height - reservedLines
	if m.state.ViewportHeight < 1 {
		m.state.ViewportHeight = 1
	}

	// Ensure viewport offset is still valid
	m.ensureSelectedVisible()
}

// ensureSelectedVisible ensures the selected item is visible in the viewport
func (m *Model) ensureSelectedVisible() {
	m.syncNavigatorState()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

// clampSelection keeps the cursor on a selectable row after the list changed
func (m *Model) clampSelection() {
	m.syncNavigatorState()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Clamp(m.state.CurrentRows())
}

// selectSection parks the cursor on a section header
func (m *Model) selectSection(name string) {
	for i, row := range m.state.CurrentRows() {
		if row.Kind == state.RowSection && row.Section == name {
			m.syncNavigatorState()
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(i)
			return
		}
	}
	m.clampSelection()
}

// selectEntry parks the cursor on an activity entry row
func (m *Model) selectEntry(id int64) {
	for i, row := range m.state.CurrentRows() {
		if row.Kind == state.RowEntry && row.EntryID == id {
			m.syncNavigatorState()
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(i)
			return
		}
	}
	m.clampSelection()
}

// pageSize is how far PgUp/PgDn move
func (m *Model) pageSize() int {
	size := m.state.ViewportHeight - 2 // leave some overlap
	if size < 1 {
		size = 1
	}
	return size
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Printf("processAction: %T", action)
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.syncNavigatorState()
		rows := m.state.CurrentRows()
		switch a.Direction {
		case "up":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(rows, -1)
		case "down":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(rows, 1)
		case "pageup":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(rows, -m.pageSize())
		case "pagedown":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(rows, m.pageSize())
		case "home":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.JumpTop(rows)
		case "end":
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.JumpBottom(rows)
		}

	case inputtypes.SwitchTabAction:
		switch a.Tab {
		case "roster":
			m.state.ActiveTab = state.TabRoster
		case "activity":
			m.state.ActiveTab = state.TabActivity
		case "next":
			if m.state.ActiveTab == state.TabRoster {
				m.state.ActiveTab = state.TabActivity
			} else {
				m.state.ActiveTab = state.TabRoster
			}
		}
		// Search matches index into the previous tab's rows
		m.state.ClearSearch()
		m.clampSelection()

	case inputtypes.ToggleRowAction:
		rows := m.state.CurrentRows()
		if m.state.SelectedIndex < 0 || m.state.SelectedIndex >= len(rows) {
			return nil
		}
		row := rows[m.state.SelectedIndex]
		switch row.Kind {
		case state.RowSection:
			m.state.ToggleSection(row.Section)
			m.dirty = true
			m.updateRows()
			m.clampSelection()
		case state.RowPerson:
			// Toggling from inside collapses the section and parks the
			// cursor on its header
			m.state.ToggleSection(row.Section)
			m.dirty = true
			m.updateRows()
			m.selectSection(row.Section)
		case state.RowEntry:
			m.state.ToggleEntry(row.EntryID)
			m.updateRows()
			m.clampSelection()
		case state.RowDetail:
			// Collapsing from a detail line jumps back to the entry
			m.state.ToggleEntry(row.EntryID)
			m.updateRows()
			m.selectEntry(row.EntryID)
		}

	case inputtypes.SetAllAction:
		if m.state.ActiveTab == state.TabRoster {
			m.state.SetAllSections(a.Open)
			m.dirty = true
		} else {
			m.state.SetAllEntries(a.Open)
		}
		m.updateRows()
		m.clampSelection()

	case inputtypes.ExpandSectionsAction:
		// Filter mode opens every section so matches cannot hide
		m.state.SetAllSections(true)
		m.updateRows()
		m.ensureSelectedVisible()

	case inputtypes.RefreshAction:
		if m.bus != nil {
			m.bus.Publish(eventbus.RefreshRequestedEvent{Reason: eventbus.RefreshManual})
		}

	case inputtypes.UpdateTextAction:
		// Filter narrows the list on every keystroke
		if m.inputHandler.CurrentMode() == inputtypes.ModeFilter {
			m.applyFilter(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			m.state.SearchQuery = a.Text
			m.performSearch()
			if len(m.state.SearchMatches) > 0 {
				m.state.SearchIndex = 0
				m.syncNavigatorState()
				m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SearchMatches[0])
			} else if a.Text != "" {
				m.state.StatusMessage = fmt.Sprintf("No matches for '%s'", a.Text)
				return m.clearStatusLater()
			}
		case inputtypes.ModeFilter:
			// Already applied per keystroke; keep it after leaving the mode
			m.applyFilter(a.Text)
		}

	case inputtypes.CancelTextAction:
		// Abandon whatever was being typed
		m.state.ClearSearch()
		if m.state.IsFiltered {
			m.applyFilter("")
		}

	case inputtypes.ClearFilterAction:
		m.applyFilter("")
		m.state.StatusMessage = "Filter cleared"
		return m.clearStatusLater()

	case inputtypes.ClearSearchAction:
		m.state.ClearSearch()

	case inputtypes.SearchNavigateAction:
		if m.state.SearchQuery != "" && len(m.state.SearchMatches) > 0 {
			switch a.Direction {
			case "next":
				m.state.SearchIndex = (m.state.SearchIndex + 1) % len(m.state.SearchMatches)
			case "prev":
				m.state.SearchIndex--
				if m.state.SearchIndex < 0 {
					m.state.SearchIndex = len(m.state.SearchMatches) - 1
				}
			}
			m.syncNavigatorState()
			m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SearchMatches[m.state.SearchIndex])
		}

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.OpenHelpPagerAction:
		return m.showHelpPager(m.helpRender.RenderHelpContentPlain())

	case inputtypes.ToggleInfoAction:
		if m.state.ShowInfo {
			m.state.ShowInfo = false
			m.state.InfoContent = ""
			return nil
		}
		content := m.buildInfoContent()
		if content == "" {
			return nil
		}
		m.state.ShowInfo = true
		m.state.InfoContent = content

	case inputtypes.OpenDetailsAction:
		rows := m.state.CurrentRows()
		if m.state.SelectedIndex >= 0 && m.state.SelectedIndex < len(rows) {
			row := rows[m.state.SelectedIndex]
			if row.Kind == state.RowEntry || row.Kind == state.RowDetail {
				if e, ok := m.state.EntryByID(row.EntryID); ok {
					return m.showDetailPager(e)
				}
			}
		}

	case inputtypes.OpenLogAction:
		if m.logPath == "" {
			m.state.StatusMessage = "No log file configured"
			return m.clearStatusLater()
		}
		return m.showLogPager(m.logPath)

	case inputtypes.YankAction:
		text := m.yankText()
		if text == "" {
			return nil
		}
		return func() tea.Msg {
			err := clipboard.WriteAll(text)
			return clipboardMsg{text: text, err: err}
		}

	case inputtypes.SortByAction:
		m.handleSortInput(a.Criteria)

	case inputtypes.UpdateSortIndexAction:
		m.state.SortOptionIndex = a.Index

	case inputtypes.SaveViewAction:
		m.publishViewSettings()
		m.dirty = false

	case inputtypes.QuitAction:
		if a.Force {
			return tea.Quit
		}
		if a.Save || m.config.UISettings.AutosaveOnExit {
			m.publishViewSettings()
		}
		return tea.Quit
	}

	return nil
}

// applyFilter sets the live filter and rebuilds the row lists
func (m *Model) applyFilter(query string) {
	m.state.FilterQuery = query
	m.state.IsFiltered = query != ""
	m.updateRows()
	m.clampSelection()
}

// performSearch recomputes match indexes against the current row list
func (m *Model) performSearch() {
	s := m.state
	s.SearchMatches = logic.SearchRows(s.SearchQuery, s.CurrentRows(), s.People, s.Entries)
	if s.SearchIndex >= len(s.SearchMatches) {
		s.SearchIndex = 0
	}
}

// handleSortInput processes sort criteria input
func (m *Model) handleSortInput(criteria string) {
	mode := logic.ParseSortMode(criteria)
	if mode == m.currentSort {
		return
	}
	m.currentSort = mode
	m.dirty = true
	m.state.StatusMessage = fmt.Sprintf("Sorting by %s", mode)
	m.updateRows()
	m.ensureSelectedVisible()
}

// publishViewSettings hands the current view settings to the config service
func (m *Model) publishViewSettings() {
	if m.bus == nil {
		return
	}
	sections := make(map[string]bool, len(m.state.ExpandedSections))
	for name, open := range m.state.ExpandedSections {
		sections[name] = open
	}
	m.bus.Publish(eventbus.ConfigChangedEvent{
		ExpandedSections: sections,
		SortMode:         m.currentSort.String(),
		ExpandDetails:    m.config.UISettings.ExpandDetails,
	})
}

// buildInfoContent builds popup content for the row under the cursor
func (m *Model) buildInfoContent() string {
	rows := m.state.CurrentRows()
	if m.state.SelectedIndex < 0 || m.state.SelectedIndex >= len(rows) {
		return ""
	}
	row := rows[m.state.SelectedIndex]
	switch row.Kind {
	case state.RowPerson:
		if p, ok := m.state.PersonByID(row.PersonID); ok {
			return m.buildPersonInfo(p)
		}
	case state.RowEntry, state.RowDetail:
		if e, ok := m.state.EntryByID(row.EntryID); ok {
			return m.buildEntryInfo(e)
		}
	}
	return ""
}

// buildPersonInfo renders the info popup for a roster person
func (m *Model) buildPersonInfo(p *domain.Person) string {
	var info strings.Builder

	info.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Name))
	info.WriteString("\n\n")

	info.WriteString(fmt.Sprintf("ID: %s\n", p.ID))
	info.WriteString(fmt.Sprintf("Role: %s\n", p.Role))
	if p.Unit != "" {
		info.WriteString(fmt.Sprintf("Unit: %s\n", p.Unit))
	}
	if p.Email != "" {
		info.WriteString(fmt.Sprintf("Email: %s\n", p.Email))
	}
	if p.Phone != "" {
		info.WriteString(fmt.Sprintf("Phone: %s\n", p.Phone))
	}
	if p.Gender != "" {
		info.WriteString(fmt.Sprintf("Gender: %s\n", p.Gender))
	}
	if p.BirthDate != "" {
		info.WriteString(fmt.Sprintf("Born: %s\n", p.BirthDate))
	}
	if !p.LastSeen.IsZero() {
		info.WriteString(fmt.Sprintf("Last seen: %s\n", p.LastSeen.Format("2006-01-02 15:04")))
	}
	info.WriteString("\n")

	// Sync state, colored like the list view
	info.WriteString(lipgloss.NewStyle().Bold(true).Render("Sync:"))
	info.WriteString("\n")
	statusStyled := lipgloss.NewStyle().Foreground(lipgloss.Color(views.GetSyncColor(p.Sync.Status)))
	info.WriteString("  Status: ")
	info.WriteString(statusStyled.Render(string(p.Sync.Status)))
	info.WriteString("\n")
	if p.Sync.FHIRID != "" {
		info.WriteString(fmt.Sprintf("  FHIR id: %s\n", p.Sync.FHIRID))
	}
	if p.Sync.Attempts > 0 {
		info.WriteString(fmt.Sprintf("  Attempts: %d\n", p.Sync.Attempts))
	}
	if !p.Sync.LastAttempt.IsZero() {
		info.WriteString(fmt.Sprintf("  Last attempt: %s\n", p.Sync.LastAttempt.Format("2006-01-02 15:04:05")))
	}
	if p.Sync.LastError != "" {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		info.WriteString(fmt.Sprintf("  Error: %s\n", errorStyle.Render(p.Sync.LastError)))
	}

	info.WriteString("\n")
	info.WriteString("Press ESC or 'i' to close")

	return info.String()
}

// buildEntryInfo renders the info popup for an activity entry
func (m *Model) buildEntryInfo(e *domain.Entry) string {
	var info strings.Builder

	levelStyled := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(views.GetLevelColor(e.Level)))
	info.WriteString(levelStyled.Render(strings.ToUpper(string(e.Level))))
	info.WriteString(" ")
	info.WriteString(lipgloss.NewStyle().Bold(true).Render(e.Message))
	info.WriteString("\n\n")

	if !e.Time.IsZero() {
		info.WriteString(fmt.Sprintf("Time: %s\n", e.Time.Format("2006-01-02 15:04:05")))
	}
	if e.ResourceType != "" || e.ResourceID != "" {
		info.WriteString(fmt.Sprintf("Resource: %s/%s\n", e.ResourceType, e.ResourceID))
	}
	if e.Operation != "" {
		info.WriteString(fmt.Sprintf("Operation: %s\n", e.Operation))
	}
	if e.Attempts > 0 {
		info.WriteString(fmt.Sprintf("Attempts: %d\n", e.Attempts))
	}

	if len(e.Details) > 0 {
		info.WriteString("\n")
		info.WriteString(lipgloss.NewStyle().Bold(true).Render("Details:"))
		info.WriteString("\n")
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			info.WriteString(fmt.Sprintf("  %s: %v\n", k, e.Details[k]))
		}
	}

	info.WriteString("\n")
	info.WriteString("Press ESC or 'i' to close")

	return info.String()
}

// buildEntryPagerContent generates a plain text report for the entry
// suitable for pager display
func (m *Model) buildEntryPagerContent(e *domain.Entry) string {
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Render("Activity Entry")
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Level: %s\n", e.Level))
	b.WriteString(fmt.Sprintf("Message: %s\n", e.Message))
	if !e.Time.IsZero() {
		b.WriteString(fmt.Sprintf("Time: %s\n", e.Time.Format("2006-01-02 15:04:05 MST")))
	}
	if e.ResourceType != "" || e.ResourceID != "" {
		b.WriteString(fmt.Sprintf("Resource: %s/%s\n", e.ResourceType, e.ResourceID))
	}
	if e.Operation != "" {
		b.WriteString(fmt.Sprintf("Operation: %s\n", e.Operation))
	}
	if e.Attempts > 0 {
		b.WriteString(fmt.Sprintf("Attempts: %d\n", e.Attempts))
	}
	if len(e.Details) > 0 {
		b.WriteString("\nDetails:\n")
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s: %v\n", k, e.Details[k]))
		}
	}
	b.WriteString("\nPress q to close")
	return b.String()
}

// yankText picks what y copies for the current row
func (m *Model) yankText() string {
	rows := m.state.CurrentRows()
	if m.state.SelectedIndex < 0 || m.state.SelectedIndex >= len(rows) {
		return ""
	}
	row := rows[m.state.SelectedIndex]
	switch row.Kind {
	case state.RowSection:
		return row.Section
	case state.RowPerson:
		return row.PersonID
	case state.RowEntry, state.RowDetail:
		if e, ok := m.state.EntryByID(row.EntryID); ok {
			if e.ResourceID != "" {
				return e.ResourceID
			}
			return e.Message
		}
	}
	return ""
}

// showDetailPager returns a command that shows the full entry record in
// the ov pager
func (m *Model) showDetailPager(e *domain.Entry) tea.Cmd {
	content := m.buildEntryPagerContent(e)
	id := e.ID
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pagerOps.ShowTextInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return detailPagerMsg{entryID: id, err: err}
	}
}

// showLogPager returns a command that opens the application log in the ov pager
func (m *Model) showLogPager(path string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})

		err := m.pagerOps.ShowFileInPager(path)

		m.program.Send(resumeRenderingMsg{})

		return logPagerMsg{path: path, err: err}
	}
}

// showHelpPager returns a command that shows help using the ov pager
func (m *Model) showHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})

		err := m.pagerOps.ShowTextInPager(helpContent)

		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

// clearStatusLater clears the status line after a short delay
func (m *Model) clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		// Process domain events
		return m, m.eventHandler.HandleEvent(msg.Event)

	case refreshTickMsg:
		// A visible UI reloads on cadence; a hidden or pager-covered one
		// skips the fetch entirely. The timer always re-arms.
		if m.state.Visible && !m.inPagerMode && m.bus != nil {
			m.bus.Publish(eventbus.RefreshRequestedEvent{Reason: eventbus.RefreshTick})
		}
		return m, m.scheduleRefresh()

	case tickMsg:
		// Don't continue the tick loop while the pager owns the terminal
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case handlers.TickMsg:
		// Spinner pulse while a reload is in flight
		if m.state.Loading {
			return m, tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
				return handlers.TickMsg(t)
			})
		}
		return m, nil

	case detailPagerMsg:
		if msg.err != nil {
			log.Printf("Detail pager failed for entry %d: %v", msg.entryID, msg.err)
			m.state.StatusMessage = fmt.Sprintf("Pager failed: %v", msg.err)
			return m, m.clearStatusLater()
		}
		return m, nil

	case logPagerMsg:
		if msg.err != nil {
			log.Printf("Log pager failed for %s: %v", msg.path, msg.err)
			m.state.StatusMessage = fmt.Sprintf("Pager failed: %v", msg.err)
			return m, m.clearStatusLater()
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; the overlay help still works
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.state.StatusMessage = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.state.StatusMessage = fmt.Sprintf("Copied '%s'", msg.text)
		}
		return m, m.clearStatusLater()

	case pauseRenderingMsg:
		// Signal that rendering should be paused for external pager
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		// Restart the animation loop the pager paused
		m.inPagerMode = false
		return m, tick()

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	default:
		// Other messages are handled elsewhere
		return m, nil
	}
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
