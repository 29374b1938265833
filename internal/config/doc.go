// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for keyspace.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - InputConfig: Echo, retry and line limits for the password prompt
//   - OutputConfig: Report format and verbosity
//   - LoggingConfig: Diagnostic logging on stderr
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (KEYSPACE_*)
//   - ~/.keyspace/config.toml
//   - ~/.keyspace/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	r := prompt.New(os.Stdin, os.Stdout,
//	    prompt.WithHideInput(cfg.Input.HideEcho),
//	    prompt.WithMaxAttempts(cfg.Input.MaxAttempts))
package config
