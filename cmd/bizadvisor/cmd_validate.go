package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sadopc/bizadvisor/internal/core/profile"
)

func validateCmd() {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bizadvisor validate <profile.json|profile.yaml> [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Validate business profile files.\n\n")
		fmt.Fprintf(os.Stderr, "A profile must carry all six keys; every key except currentSoftware must be non-empty.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  bizadvisor validate shop.json\n")
		fmt.Fprintf(os.Stderr, "  bizadvisor validate profiles/*.yaml\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one file path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	hasErrors := false
	for _, path := range fs.Args() {
		if err := validateFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			hasErrors = true
		} else {
			fmt.Printf("OK   %s\n", path)
		}
	}

	if hasErrors {
		os.Exit(1)
	}
}

func validateFile(path string) error {
	_, err := profile.LoadRecord(path)
	return err
}
