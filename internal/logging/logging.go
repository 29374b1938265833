// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the diagnostic logger for keyspace.
//
// Diagnostics never go to stdout, which carries the report. Lines use the
// "EVENT | key=value" form and are prefixed with a per-run id so a single
// invocation can be picked out of a shared log file.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/google/uuid"
)

// Options controls where diagnostics go.
type Options struct {
	// Enabled turns diagnostics on. When false every line is discarded.
	Enabled bool
	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
	// File, if set, also appends log lines to this path.
	File string
}

// Setup returns a logger for one run and a close function for any log file
// it opened. The close function is never nil.
func Setup(opts Options) (*log.Logger, func() error, error) {
	noop := func() error { return nil }
	if !opts.Enabled {
		return Discard(), noop, nil
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	closeFn := noop
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, noop, err
		}
		out = io.MultiWriter(out, f)
		closeFn = f.Close
	}

	runID := uuid.New().String()[:8]
	logger := log.New(out, "keyspace["+runID+"] ", log.LstdFlags|log.Lmicroseconds)
	return logger, closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
