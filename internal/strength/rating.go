// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package strength

import "fmt"

// Level is a coarse label for a bit length.
type Level int

const (
	Weak Level = iota
	Fair
	Good
	Strong
	Excellent
)

// String returns a human-readable representation of the level.
func (l Level) String() string {
	switch l {
	case Weak:
		return "Weak"
	case Fair:
		return "Fair"
	case Good:
		return "Good"
	case Strong:
		return "Strong"
	case Excellent:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// MarshalText renders the level by name in JSON output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Thresholds are the minimum bit lengths for each level above Weak.
type Thresholds struct {
	Fair      int `toml:"fair_bits" json:"fair_bits"`
	Good      int `toml:"good_bits" json:"good_bits"`
	Strong    int `toml:"strong_bits" json:"strong_bits"`
	Excellent int `toml:"excellent_bits" json:"excellent_bits"`
}

// DefaultThresholds returns the built-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Fair:      28,
		Good:      36,
		Strong:    60,
		Excellent: 128,
	}
}

// Validate checks that the thresholds are positive and strictly increasing.
func (t Thresholds) Validate() error {
	if t.Fair <= 0 {
		return fmt.Errorf("fair_bits must be positive, got %d", t.Fair)
	}
	if t.Good <= t.Fair || t.Strong <= t.Good || t.Excellent <= t.Strong {
		return fmt.Errorf("thresholds must increase: fair=%d good=%d strong=%d excellent=%d",
			t.Fair, t.Good, t.Strong, t.Excellent)
	}
	return nil
}

// Rate maps bits onto a level.
func (t Thresholds) Rate(bits int) Level {
	switch {
	case bits >= t.Excellent:
		return Excellent
	case bits >= t.Strong:
		return Strong
	case bits >= t.Good:
		return Good
	case bits >= t.Fair:
		return Fair
	default:
		return Weak
	}
}
