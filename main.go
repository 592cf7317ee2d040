package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"wardview/internal/config"
	"wardview/internal/eventbus"
	"wardview/internal/refresh"
	"wardview/internal/source"
	"wardview/internal/ui"
	"wardview/internal/watch"
)

const version = "0.3.0"

func main() {
	var (
		showVersion bool
		interval    int
		watchFiles  bool
	)
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.IntVar(&interval, "interval", 0, "Refresh interval in seconds (overrides config)")
	flag.BoolVar(&watchFiles, "watch", false, "Reload when the export files change on disk")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "wardview %s - live terminal view of a ward export\n\n", version)
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [data dir or .db file]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("wardview %s\n", version)
		return
	}

	// Positional argument is the export location; default is the current dir
	target := "."
	if flag.NArg() > 0 {
		target = flag.Arg(0)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	// The log lives next to the data so one export dir is self-contained.
	// When the target is a database file, log next to it instead.
	logDir := absTarget
	if info, err := os.Stat(absTarget); err == nil && !info.IsDir() {
		logDir = filepath.Dir(absTarget)
	}
	logPath := filepath.Join(logDir, "wardview.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	log.Printf("wardview %s starting, target=%s", version, absTarget)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration: a .wardview.toml next to the data wins, the
	// user config dir is the fallback. First run writes the defaults.
	configSvc := config.NewConfigServiceWithBus(bus)
	configPath := filepath.Join(logDir, config.FileName)
	cfg := loadOrCreateConfig(configSvc, configPath, absTarget)

	// Flag overrides beat the file
	if interval > 0 {
		cfg.Interval = interval
	}
	if watchFiles {
		cfg.Watch = true
	}

	// Persist view settings the UI announces at quit
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ConfigChangedEvent)
		if !ok {
			return
		}
		cfg.ExpandedSections = event.ExpandedSections
		cfg.UISettings.SortMode = event.SortMode
		cfg.UISettings.ExpandDetails = event.ExpandDetails
		if err := configSvc.SaveToPath(cfg, configPath); err != nil {
			log.Printf("Failed to save config: %v", err)
		} else {
			log.Printf("Config saved to %s", configPath)
			bus.Publish(eventbus.ConfigSavedEvent{})
		}
	})

	// Open the export
	src, err := source.Detect(absTarget)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()
	log.Printf("Source: %s", src.Origin())

	// Refresh service subscribes itself to reload requests
	refresh.NewService(bus, src)

	// Optional change notifications from disk
	if cfg.Watch {
		w, err := watch.NewWatcher(bus, src.Paths())
		if err != nil {
			log.Printf("Watch disabled: %v", err)
		} else {
			go func() {
				if err := w.Start(ctx); err != nil {
					log.Printf("Watcher stopped: %v", err)
					bus.Publish(eventbus.WatchErrorEvent{Err: err})
				}
			}()
		}
	}

	// Create UI model and program
	uiModel := ui.NewModel(bus, cfg)
	uiModel.SetLogPath(logPath)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithReportFocus())
	uiModel.SetProgram(p)

	// Forward bus events to the UI loop. The channel decouples handler
	// goroutines from p.Send; when it backs up events are dropped, same
	// policy as the bus itself.
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, et := range []eventbus.EventType{
		eventbus.EventRefreshRequested,
		eventbus.EventSnapshotLoaded,
		eventbus.EventLoadFailed,
		eventbus.EventSourceChanged,
		eventbus.EventWatchError,
		eventbus.EventError,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(et, forward)
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// First snapshot; later reloads come from the visibility-gated tick
	bus.Publish(eventbus.RefreshRequestedEvent{Reason: eventbus.RefreshInit})

	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	close(eventChan)
	cancel()
}

// loadOrCreateConfig reads the config next to the data, then the user
// config dir, and writes defaults when neither exists.
func loadOrCreateConfig(configSvc config.ConfigService, configPath, dataDir string) *config.Config {
	if _, err := os.Stat(configPath); err == nil {
		if cfg, err := configSvc.LoadFromPath(configPath); err == nil {
			log.Printf("Loaded config from %s", configPath)
			cfg.DataDir = dataDir
			return cfg
		} else {
			log.Printf("Ignoring unreadable config %s: %v", configPath, err)
		}
	}

	// User config dir, or built-in defaults when nothing exists yet
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		cfg = config.DefaultConfig()
	}
	cfg.DataDir = dataDir

	// Seed the per-data-dir file so later runs find it next to the export
	if err := configSvc.SaveToPath(cfg, configPath); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg
}
