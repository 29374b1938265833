// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// confirm.go - Confirmation handling for destructive keyspace commands.
//
// The pattern is:
//  1. If --force is present, proceed without prompting
//  2. In JSON mode, require --force (no interactive prompts in JSON mode)
//  3. If stdin is not a terminal, require --force (can't prompt)
//  4. Otherwise, ask on stderr and read the answer from stdin

package cli

import (
	"bufio"
	"fmt"
	"strings"
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = isTerminal

// ConfirmationOptions controls RequireConfirmation.
type ConfirmationOptions struct {
	// Force indicates --force was passed (skip the prompt)
	Force bool
	// JSONMode indicates --json was passed (requires Force)
	JSONMode bool
}

// RequireConfirmation checks that the user agreed to action.
// It returns false with a nil error when the user declines.
func RequireConfirmation(s Streams, action string, opts ConfirmationOptions) (bool, error) {
	if opts.Force {
		return true, nil
	}

	if opts.JSONMode || !stdinIsTerminal(s.In) {
		return false, NewValidationErrorWithExample(
			"confirmation", "",
			"--force is required to "+action+" without an interactive terminal",
			"keyspace config init --force")
	}

	return PromptYesNo(s, fmt.Sprintf("%s %s?", WarningStyle.Render("[WARN]"), capitalize(action))), nil
}

// PromptYesNo asks question on s.Err and reads a y/N answer from s.In.
// Anything but "y" or "yes" is a no.
func PromptYesNo(s Streams, question string) bool {
	fmt.Fprintf(s.Err, "%s [y/N]: ", question)

	answer, err := bufio.NewReader(s.In).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
