// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across keyspace.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//   - AtomicWriteFileWithDir: Same, with explicit parent directory permissions
//
// Display Width:
//   - StringWidth, PadRight, MaxWidth: terminal-cell aware padding
//
// # Usage
//
//	// Write the config file atomically, owner-only
//	err := util.AtomicWriteFileWithDir(path, data, 0600, 0700)
//
//	// Align labels in plain-text tables
//	label := util.PadRight("digit", util.MaxWidth(names...))
package util
