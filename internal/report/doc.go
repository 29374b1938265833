// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report formats strength results for people and for machines.
//
//   - WriteText: the two-line report printed by default
//   - WriteJSON: the result wrapped in the standard JSON envelope
//   - WriteBreakdown: a per-category table with grouped combinations,
//     log-domain entropy and a rating, printed with --verbose
//
// None of these ever see the password itself, only its Result and Presence.
package report
