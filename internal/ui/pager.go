package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// PagerOps runs the ov pager for entry details, the application log and
// the key reference, handling terminal release/restore around it.
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(prog *tea.Program) {
	p.program = prog
}

// ShowTextInPager shows pre-rendered content using the ov pager
func (p *PagerOps) ShowTextInPager(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}
	return p.runPager(root)
}

// ShowFileInPager opens a file (the app log) in the ov pager
func (p *PagerOps) ShowFileInPager(path string) error {
	root, err := oviewer.Open(path)
	if err != nil {
		return err
	}
	return p.runPager(root)
}

// runPager configures and runs an oviewer root, releasing the terminal first
func (p *PagerOps) runPager(root *oviewer.Root) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false

	// Add vim-like navigation
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}

// configureVimKeyBindings layers vim movement keys over ov's defaults
func configureVimKeyBindings(config *oviewer.Config) {
	config.Keybind = map[string][]string{
		"exit":            {"Escape", "q"},
		"down":            {"Enter", "Down", "ctrl+n", "j"},
		"up":              {"Up", "ctrl+p", "k"},
		"top":             {"Home", "g"},
		"bottom":          {"End", "G"},
		"page_up":         {"PageUp", "ctrl+b"},
		"page_down":       {"PageDown", "ctrl+f"},
		"half_page_up":    {"ctrl+u"},
		"half_page_down":  {"ctrl+d"},
		"search":          {"/"},
		"backsearch":      {"?"},
		"next_search":     {"n"},
		"next_backsearch": {"N"},
	}
}
