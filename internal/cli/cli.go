// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for keyspace.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdCheck Command = iota
	CmdMeter
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON output.
func (c Command) String() string {
	switch c {
	case CmdCheck:
		return "check"
	case CmdMeter:
		return "meter"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	HideInput      bool // --hide / --show
	HideSet        bool // true when either flag was given
	JSON           bool // Output in JSON format
	Verbose        bool
	MaxAttempts    int
	MaxAttemptsSet bool
	ConfigPath     string

	// Command-specific
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Color enables styled output on Out.
	Color bool
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{
		In:    os.Stdin,
		Out:   os.Stdout,
		Err:   os.Stderr,
		Color: ColorsEnabled(),
	}
}

const usageText = `keyspace - password strength estimator

Estimates how hard a password is to brute force from the character
classes it uses and its length, and prints the search space and the
equivalent key length in bits.

Usage:
  keyspace                   Prompt for a password and analyze it (default)
  keyspace check             Same as the default
  keyspace meter             Live strength meter (interactive terminal)
  keyspace config [show]     Show the effective configuration
  keyspace config init       Write a default config file
    --force                  Overwrite an existing file
    --path FILE              Write to FILE instead of ~/.keyspace/config.toml
  keyspace config path       Show the config file location
  keyspace version           Show version information
  keyspace help              Show this help

Global Flags:
  --hide                     Do not echo the password while typing
  --show                     Echo the password while typing (default)
  --json                     Output in JSON format
  -v, --verbose              Print a per-category breakdown and diagnostics
  --max-attempts N           Re-prompt at most N times on invalid entry (0 = no limit)
  --config FILE              Use FILE instead of ~/.keyspace/config.toml

Environment:
  KEYSPACE_HIDE_INPUT        true to hide input by default
  KEYSPACE_MAX_ATTEMPTS      Default for --max-attempts
  KEYSPACE_FORMAT            text or json
  KEYSPACE_DEBUG             true to log diagnostics to stderr
  KEYSPACE_LOG_FILE          Also append diagnostics to this file
  NO_COLOR, FORCE_COLOR      Disable or force colored output

Exit Codes:
  0  Success
  1  No input, too many invalid entries, or other failure
  2  Usage error
  3  Configuration error
  130  Interrupted

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "keyspace version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args, error) {
	// Parse global flags first
	remaining, parsedArgs, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, parsedArgs, err
	}

	// No command means the default analysis
	if len(remaining) == 0 {
		return CmdCheck, parsedArgs, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 {
		parsedArgs.Subcommand = remaining[0]
	}

	switch cmd {
	case "check", "analyze":
		if len(remaining) > 0 {
			return CmdCheck, parsedArgs, NewValidationErrorWithExample(
				"argument", remaining[0],
				"check does not take arguments; the password is read from the prompt",
				"keyspace check --hide")
		}
		return CmdCheck, parsedArgs, nil

	case "meter":
		return CmdMeter, parsedArgs, nil

	case "config":
		return CmdConfig, parsedArgs, nil

	case "version", "--version":
		return CmdVersion, parsedArgs, nil

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs, nil

	default:
		example := "keyspace help"
		if suggestion := SuggestCommand(cmd); suggestion != "" {
			example = "keyspace " + suggestion
		}
		return CmdHelp, parsedArgs, NewValidationErrorWithExample("command", cmd, "unknown command", example)
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args, error) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "--hide":
			parsedArgs.HideInput = true
			parsedArgs.HideSet = true
		case "--show":
			parsedArgs.HideInput = false
			parsedArgs.HideSet = true
		case "--json":
			parsedArgs.JSON = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--max-attempts":
			if i+1 >= len(args) {
				return nil, parsedArgs, ErrMissingArgument("max-attempts", "keyspace --max-attempts 3")
			}
			i++
			if err := setMaxAttempts(&parsedArgs, args[i]); err != nil {
				return nil, parsedArgs, err
			}
		case "--config":
			if i+1 >= len(args) {
				return nil, parsedArgs, ErrMissingArgument("config", "keyspace --config ./keyspace.toml")
			}
			i++
			parsedArgs.ConfigPath = args[i]
		default:
			switch {
			case strings.HasPrefix(arg, "--max-attempts="):
				if err := setMaxAttempts(&parsedArgs, strings.TrimPrefix(arg, "--max-attempts=")); err != nil {
					return nil, parsedArgs, err
				}
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs, nil
}

func setMaxAttempts(args *Args, value string) error {
	n, err := ParseNonNegativeInt(value, "max-attempts")
	if err != nil {
		return err
	}
	args.MaxAttempts = n
	args.MaxAttemptsSet = true
	return nil
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// Run executes cmd. Errors are returned for the caller to display and map to
// an exit code with GetExitCode.
func Run(ctx context.Context, cmd Command, args Args, s Streams) error {
	switch cmd {
	case CmdCheck:
		return HandleCheck(ctx, args, s)
	case CmdMeter:
		return HandleMeter(ctx, args, s)
	case CmdConfig:
		return HandleConfig(args, s)
	case CmdVersion:
		return HandleVersion(args, s)
	case CmdHelp:
		return HandleHelp(s)
	default:
		return NewValidationError("command", strconv.Itoa(int(cmd)), "unknown command")
	}
}

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(args Args, s Streams) error {
	if args.JSON {
		return writeJSON(s.Out, "version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		})
	}
	PrintVersion(s.Out)
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp(s Streams) error {
	PrintUsage(s.Out)
	return nil
}
