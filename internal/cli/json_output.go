// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support for keyspace commands.
//
// Every command accepts --json and answers with the envelope from the report
// package: {success, data, error, timestamp, command}. Prompts and
// human-readable messages go to stderr in JSON mode.

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/jeranaias/keyspace/internal/config"
	"github.com/jeranaias/keyspace/internal/report"
)

// writeJSON writes a successful envelope for command.
func writeJSON(w io.Writer, command string, data interface{}) error {
	return report.NewEnvelope(command, data).Write(w)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// ConfigPathData represents the data returned by config path and config init.
type ConfigPathData struct {
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
	Written bool   `json:"written,omitempty"`
}

// JSONMode reports whether errors should be rendered as JSON: --json was
// given or the effective output format is json. The format comes from the
// config file and KEYSPACE_FORMAT; if the config cannot be loaded only the
// environment is consulted.
func JSONMode(args Args) bool {
	if args.JSON {
		return true
	}
	if cfg, err := loadConfig(args); err == nil {
		return cfg.Output.Format == config.FormatJSON
	}
	return strings.ToLower(os.Getenv("KEYSPACE_FORMAT")) == config.FormatJSON
}
