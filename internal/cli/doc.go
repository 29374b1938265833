// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command execution for keyspace.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed global flags and the arguments after the command
//   - Streams: The stdin/stdout/stderr a command runs against
//
// # Usage
//
//	cmd, args, err := cli.Parse()
//	if err == nil {
//	    err = cli.Run(ctx, cmd, args, cli.StdStreams())
//	}
//	if err != nil {
//	    cli.DisplayError(cli.StdStreams(), err, args.JSON, cmd.String())
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Commands Overview
//
//   - check (default): prompt for a password and print its search space
//   - meter: live strength meter in the terminal
//   - config: show, init and locate the configuration file
//   - version, help
//
// All commands support --json.
package cli
