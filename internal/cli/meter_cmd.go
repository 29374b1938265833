// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// meter_cmd.go - Meter command implementation for keyspace.
//
// Command: meter
// Short:   Live strength meter
//
// Keys:
//   enter    Analyze the current value and print the regular report
//   ctrl+r   Toggle between masked and shown input
//   esc      Leave without printing anything
//
// Tab cannot be entered in the meter; the text input turns it into a space.

package cli

import (
	"context"

	"github.com/jeranaias/keyspace/internal/charset"
	"github.com/jeranaias/keyspace/internal/meter"
	"github.com/jeranaias/keyspace/internal/strength"
)

// runMeter is replaced in tests.
var runMeter = meter.Run

// HandleMeter runs the live meter and prints the report for a submitted value.
func HandleMeter(ctx context.Context, args Args, s Streams) error {
	if err := RequiresTTY(s.In, s.Out, "run the meter"); err != nil {
		return err
	}
	return runMeterCommand(ctx, args, s)
}

func runMeterCommand(ctx context.Context, args Args, s Streams) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg, s)
	if err != nil {
		return err
	}
	defer closeLog()

	outcome, err := runMeter(ctx, meter.Options{
		Thresholds: cfg.Rating,
		MaxLength:  cfg.Input.MaxLineBytes,
		Reveal:     args.HideSet && !args.HideInput,
	}, s.In, s.Out)
	if err != nil {
		logger.Printf("METER_EXIT | error=%v", err)
		return err
	}
	if !outcome.Submitted {
		return nil
	}

	presence := charset.Classify(outcome.Password)
	result := strength.Estimate(presence, len(outcome.Password))
	logger.Printf("ANALYSIS_COMPLETE | source=meter length=%d categories=%s alphabet=%d bits=%d",
		result.Length, presence, result.AlphabetSize, result.Bits)

	return writeResult(s, cfg, "meter", result, presence)
}
