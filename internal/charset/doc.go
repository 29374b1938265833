// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package charset classifies the characters of a password into the seven
// disjoint categories keyspace uses to estimate the effective alphabet.
//
// # Key Types
//
//   - Category: one of Digit, Lower, Upper, Punct, Space, Tab, Other
//   - Presence: which categories occur at least once in a password
//
// # Usage
//
//	p := charset.Classify("aB3!")
//	p.Has(charset.Upper)  // true
//	p.AlphabetSize()      // 94
//
// Classification is byte oriented and restricted to 7-bit ASCII. Every byte
// outside the ASCII classes, including each byte of a multi-byte UTF-8
// sequence, falls into Other with an alphabet size of 1. That underestimates
// non-ASCII passwords on purpose.
package charset
