package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/bizadvisor/internal/core/history"
	"github.com/sadopc/bizadvisor/internal/core/profile"
)

func historyCmd() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limitFlag := fs.Int("limit", 20, "Maximum number of submissions to list")
	outputFlag := fs.String("output", "text", "Output format: text, json")
	searchFlag := fs.String("search", "", "Only list submissions whose business type or tasks match")
	configFlag := fs.String("config", "", "Path to a config.yaml file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bizadvisor history [flags]\n\n")
		fmt.Fprintf(os.Stderr, "List past submissions, newest first.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bizadvisor history\n")
		fmt.Fprintf(os.Stderr, "  bizadvisor history --search retail --output json\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	switch *outputFlag {
	case "text", "json":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid output format %q (must be text or json)\n", *outputFlag)
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}

	store, err := openStore(cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := listHistory(store, *searchFlag, *limitFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFlag == "json" {
		err = printHistoryJSON(os.Stdout, entries)
	} else {
		err = printHistoryText(os.Stdout, entries)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func listHistory(store *history.Store, search string, limit int) ([]history.Entry, error) {
	if search == "" {
		return store.List(limit, 0)
	}
	entries, err := store.Search(search)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func printHistoryText(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No submissions yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBMITTED\tBUSINESS\tEMPLOYEES\tREVENUE\tBUDGET\tID")
	for _, e := range entries {
		r := e.Record
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(e.SubmittedAt), r.BusinessType, r.EmployeeCount,
			r.AnnualRevenue, r.BudgetForAI, e.ID)
	}
	return tw.Flush()
}

type historyJSON struct {
	ID          string         `json:"id"`
	SubmittedAt string         `json:"submittedAt"`
	Record      profile.Record `json:"record"`
}

func printHistoryJSON(w io.Writer, entries []history.Entry) error {
	out := make([]historyJSON, len(entries))
	for i, e := range entries {
		out[i] = historyJSON{
			ID:          e.ID,
			SubmittedAt: e.SubmittedAt.UTC().Format(time.RFC3339),
			Record:      e.Record,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
