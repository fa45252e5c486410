package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/bizadvisor/internal/app"
	"github.com/sadopc/bizadvisor/internal/config"
	"github.com/sadopc/bizadvisor/internal/core/history"
	"github.com/sadopc/bizadvisor/internal/logger"
	"github.com/sadopc/bizadvisor/internal/submit"
	"github.com/sadopc/bizadvisor/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "submit":
			submitCmd()
			return
		case "history":
			historyCmd()
			return
		case "validate":
			validateCmd()
			return
		case "completion":
			completionCmd()
			return
		case "version":
			printVersion()
			return
		case "help":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func printVersion() {
	fmt.Printf("bizadvisor %s (%s) built %s\n", version.Version, version.Commit, version.Date)
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `bizadvisor - Small business AI advisor intake for the terminal

Usage:
  bizadvisor [flags]                    Launch TUI (interactive mode)
  bizadvisor <command> [args] [flags]   Run a subcommand

Commands:
  submit    Submit a profile file without the TUI
  history   List past submissions
  validate  Validate business profile files (JSON or YAML)
  completion  Generate shell completion scripts (bash, zsh, fish)
  version   Print version information
  help      Show this help message

TUI Flags:
  --config <path>  Path to a config.yaml file
  --version        Print version and exit

Run 'bizadvisor <command> --help' for more information about a command.
`)
}

// loadConfig reads path when given, otherwise the default config location.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

// openStore opens the history database, creating its directory.
func openStore(path string) (*history.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history database path is not set")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}
	return history.NewStore(path)
}

func tuiCmd() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	configFlag := flag.String("config", "", "Path to a config.yaml file")
	flag.Parse()

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		log = logger.NewNop()
	}
	defer log.Sync()

	// History is optional; the form still works without it.
	store, err := openStore(cfg.HistoryDB)
	if err != nil {
		log.Warn("history disabled", zap.Error(err))
		store = nil
	} else {
		defer store.Close()
	}

	log.Info("starting", zap.String("version", version.Version), zap.String("theme", cfg.Theme))

	model := app.New(app.Options{
		Config:  cfg,
		Store:   store,
		Handler: submit.FromConfig(cfg, store),
		Logger:  log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
