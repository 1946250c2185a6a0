package main

import (
	"errors"
	"fmt"
	"os"

	"benchdiff/internal/config"
	"benchdiff/internal/reporter"
	"benchdiff/internal/threshold"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	thresholds, err := threshold.ParseMultiple(cfg.Thresholds)
	if err != nil {
		return err
	}

	r := reporter.New(reporter.Options{
		OldRoot:     cfg.OldRoot,
		NewRoot:     cfg.NewRoot,
		SummaryFile: cfg.SummaryFile,
		Workers:     cfg.Workers,
		KeepGoing:   cfg.KeepGoing,
		Colors:      !cfg.NoColor && !cfg.JSONOutput,
		JSONOutput:  cfg.JSONOutput,
		HTMLPath:    cfg.HTMLOutput,
		Thresholds:  thresholds,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	})

	return r.Run()
}
