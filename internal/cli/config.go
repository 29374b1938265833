// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for keyspace.
//
// Command: config [subcommand]
// Short:   View and create configuration
//
// Subcommands:
//   show (default)      Display the effective configuration as TOML
//   init                Write a default configuration file (0600)
//   path                Show the configuration file path
//
// Examples:
//   keyspace config                         Show current config (default)
//   keyspace config show --json             Config in a JSON envelope
//   keyspace config init                    Create ~/.keyspace/config.toml
//   keyspace config init --force            Overwrite an existing file
//   keyspace config init --path ./ks.toml   Create a file elsewhere
//   keyspace --config ./ks.toml config show Show a specific file's result

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/keyspace/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args, s Streams) error {
	parser := NewArgParser(args.Raw)

	switch sub := parser.Subcommand(); sub {
	case "", "show":
		return handleConfigShow(args, s)
	case "init":
		return handleConfigInit(args, parser, s)
	case "path":
		return handleConfigPath(args, s)
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown config subcommand", "keyspace config [show|init|path]")
	}
}

func handleConfigShow(args Args, s Streams) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(s.Out, "config show", cfg)
	}

	data, err := cfg.TOML()
	if err != nil {
		return NewCommandError("config", "show", "cannot render configuration", err)
	}
	_, err = s.Out.Write(data)
	return err
}

func handleConfigInit(args Args, parser *ArgParser, s Streams) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}
	path = parser.FlagOrDefault("path", path)

	if _, statErr := os.Stat(path); statErr == nil {
		confirmed, err := RequireConfirmation(s, "overwrite "+path, ConfirmationOptions{
			Force:    parser.BoolFlag("force"),
			JSONMode: args.JSON,
		})
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(s.Err, DimStyle.Render("Cancelled; existing configuration kept."))
			return nil
		}
	}

	if args.ConfigPath != "" || parser.Flag("path") != "" {
		err = config.SaveTOML(config.Default(), path)
	} else {
		path, err = config.Save(config.Default())
	}
	if err != nil {
		return NewCommandError("config", "init", "cannot write "+path, err)
	}

	if args.JSON {
		return writeJSON(s.Out, "config init", ConfigPathData{Path: path, Exists: true, Written: true})
	}
	fmt.Fprintf(s.Out, "%s Wrote default configuration to %s\n", RenderStatus("ok"), path)
	return nil
}

func handleConfigPath(args Args, s Streams) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		return writeJSON(s.Out, "config path", ConfigPathData{Path: path, Exists: exists})
	}

	fmt.Fprintln(s.Out, path)
	if !exists {
		fmt.Fprintln(s.Err, DimStyle.Render("(file does not exist; built-in defaults are used)"))
	}
	return nil
}

// configPath returns --config if given, else the default TOML path.
func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}
