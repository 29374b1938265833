// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for keyspace commands.
//
// Handlers always return errors and never print them. Run's caller displays
// the error once with DisplayError and exits with GetExitCode.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/keyspace/internal/config"
	"github.com/jeranaias/keyspace/internal/meter"
	"github.com/jeranaias/keyspace/internal/prompt"
	"github.com/jeranaias/keyspace/internal/report"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitInterrupted indicates the user interrupted the command
	ExitInterrupted = prompt.ExitInterrupted
)

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "config")
	Action  string // Action being performed (e.g., "init")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// ConfigError wraps a failure to load or validate configuration.
type ConfigError struct {
	Path string // Explicit path, empty for the default search
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError displays an error in a consistent format.
//
// In JSON mode an error envelope goes to s.Out so machine consumers always
// get a document. Otherwise the message goes to s.Err and stdout is left
// alone.
func DisplayError(s Streams, err error, jsonMode bool, command string) {
	if err == nil {
		return
	}

	if jsonMode {
		displayErrorJSON(s.Out, err, command)
		return
	}

	fmt.Fprintln(s.Err)
	fmt.Fprintf(s.Err, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}

// displayErrorJSON writes the error envelope with structured details.
func displayErrorJSON(w io.Writer, err error, command string) {
	details := map[string]interface{}{}

	var cmdErr *CommandError
	var valErr *ValidationError
	var cfgErr *ConfigError
	switch {
	case errors.As(err, &valErr):
		details["error_type"] = "validation_error"
		details["field"] = valErr.Field
		details["value"] = valErr.Value
		details["reason"] = valErr.Reason
		if valErr.Example != "" {
			details["example"] = valErr.Example
		}
	case errors.As(err, &cfgErr):
		details["error_type"] = "config_error"
		if cfgErr.Path != "" {
			details["path"] = cfgErr.Path
		}
	case errors.As(err, &cmdErr):
		details["error_type"] = "command_error"
		details["action"] = cmdErr.Action
		details["reason"] = cmdErr.Reason
	case errors.Is(err, prompt.ErrNoInput):
		details["error_type"] = "no_input"
	case errors.Is(err, prompt.ErrTooManyAttempts):
		details["error_type"] = "too_many_attempts"
	default:
		details["error_type"] = "generic_error"
	}

	resp := report.NewErrorEnvelope(command, err)
	resp.Data = details
	_ = resp.Write(w)
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode determines the appropriate exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var ttyErr *TTYRequiredError
	if errors.As(err, &ttyErr) {
		return ExitUsageError
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	var configValidation config.ValidateErrors
	if errors.As(err, &configValidation) {
		return ExitConfigError
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, meter.ErrAborted) {
		return ExitInterrupted
	}

	return ExitGeneralError
}
