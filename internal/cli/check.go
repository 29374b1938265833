// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// check.go - Check command implementation for keyspace.
//
// Command: check (also the default when no command is given)
// Short:   Prompt for a password and report its search space
//
// Examples:
//   keyspace                       Prompt, echo shown, text report
//   keyspace --hide                Prompt with echo off
//   keyspace check --json          JSON envelope on stdout, prompt on stderr
//   keyspace -v                    Report plus per-category breakdown
//   printf 'hunter2\n' | keyspace  Read from a pipe (no echo control)

package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jeranaias/keyspace/internal/charset"
	"github.com/jeranaias/keyspace/internal/config"
	"github.com/jeranaias/keyspace/internal/logging"
	"github.com/jeranaias/keyspace/internal/prompt"
	"github.com/jeranaias/keyspace/internal/report"
	"github.com/jeranaias/keyspace/internal/strength"
)

// HandleCheck prompts for a password, analyzes it and prints the report.
func HandleCheck(ctx context.Context, args Args, s Streams) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg, s)
	if err != nil {
		return err
	}
	defer closeLog()

	jsonMode := cfg.Output.Format == config.FormatJSON

	// Keep stdout a single JSON document
	promptOut := s.Out
	if jsonMode {
		promptOut = s.Err
	}

	reader := prompt.New(s.In, promptOut,
		prompt.WithHideInput(cfg.Input.HideEcho),
		prompt.WithMaxAttempts(cfg.Input.MaxAttempts),
		prompt.WithMaxLineBytes(cfg.Input.MaxLineBytes),
		prompt.WithDiscardLimit(cfg.Input.DiscardLimit),
		prompt.WithLogger(logger),
	)

	password, err := reader.ReadPassword(ctx)
	if err != nil {
		return err
	}

	presence := charset.Classify(password)
	result := strength.Estimate(presence, len(password))
	logger.Printf("ANALYSIS_COMPLETE | length=%d categories=%s alphabet=%d bits=%d",
		result.Length, presence, result.AlphabetSize, result.Bits)

	return writeResult(s, cfg, "check", result, presence)
}

// writeResult prints a result in the configured format.
func writeResult(s Streams, cfg *config.Config, command string, result strength.Result, presence charset.Presence) error {
	if cfg.Output.Format == config.FormatJSON {
		return writeJSON(s.Out, command, report.NewAnalysis(result, presence, cfg.Rating))
	}

	if err := report.WriteText(s.Out, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if !cfg.Output.Verbose {
		return nil
	}

	fmt.Fprintln(s.Out)
	return report.WriteBreakdown(s.Out, result, presence, report.BreakdownOptions{
		Color:      s.Color,
		Thresholds: cfg.Rating,
	})
}

// loadConfig loads the config file and applies command-line flags on top.
func loadConfig(args Args) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &ConfigError{Path: args.ConfigPath, Err: err}
	}

	applyFlags(cfg, args)
	return cfg, nil
}

// applyFlags overrides config values with explicit flags.
func applyFlags(cfg *config.Config, args Args) {
	if args.HideSet {
		cfg.Input.HideEcho = args.HideInput
	}
	if args.MaxAttemptsSet {
		cfg.Input.MaxAttempts = args.MaxAttempts
	}
	if args.JSON {
		cfg.Output.Format = config.FormatJSON
	}
	if args.Verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Debug = true
	}
}

func setupLogging(cfg *config.Config, s Streams) (*log.Logger, func() error, error) {
	logger, closeLog, err := logging.Setup(logging.Options{
		Enabled: cfg.Logging.Debug,
		Output:  s.Err,
		File:    cfg.Logging.File,
	})
	if err != nil {
		return nil, nil, NewCommandError("log", "open", "cannot open log file "+cfg.Logging.File, err)
	}
	return logger, closeLog, nil
}
