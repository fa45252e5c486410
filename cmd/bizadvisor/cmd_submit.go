package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/bizadvisor/internal/config"
	"github.com/sadopc/bizadvisor/internal/core/history"
	"github.com/sadopc/bizadvisor/internal/core/profile"
	"github.com/sadopc/bizadvisor/internal/logger"
	"github.com/sadopc/bizadvisor/internal/submit"
)

func submitCmd() {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	configFlag := fs.String("config", "", "Path to a config.yaml file")
	timeoutFlag := fs.Duration("timeout", 0, "Submission timeout (default from config)")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record the submission in history")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bizadvisor submit <profile.json|profile.yaml> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Submit a profile file headlessly through the configured handlers.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  Submitted\n")
		fmt.Fprintf(os.Stderr, "  1  A handler failed\n")
		fmt.Fprintf(os.Stderr, "  2  Invalid arguments or profile\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: profile file path is required\n\n")
		fs.Usage()
		os.Exit(2)
	}

	rec, err := profile.LoadRecord(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}
	if *timeoutFlag > 0 {
		cfg.SubmitTimeout = *timeoutFlag
	}

	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log = logger.NewNop()
	}
	defer log.Sync()

	var store *history.Store
	if !*noHistoryFlag {
		store, err = openStore(cfg.HistoryDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	sub, err := submitRecord(ctx, cfg, submit.FromConfig(cfg, store), rec)
	if err != nil {
		log.Error("submission failed", zap.String("id", sub.ID), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Info("submission handled", zap.String("id", sub.ID))
	fmt.Printf("Submitted %s profile (%s)\n", rec.BusinessType, sub.ID)
}

// submitRecord stamps rec and runs h with the configured timeout.
func submitRecord(ctx context.Context, cfg config.Config, h submit.Handler, rec profile.Record) (submit.Submission, error) {
	timeout := cfg.SubmitTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sub := submit.New(rec)
	return sub, h.Submit(ctx, sub)
}
