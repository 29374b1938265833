// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package strength turns a character-set classification into a brute-force
// search space and its key-equivalent bit length.
//
// Combinations are exact: they are computed with math/big, so a 4096 byte
// password drawn from all categories is still printed digit for digit and
// its bit length is floor(log2) of the exact value, never of a rounded float.
package strength

import (
	"math"
	"math/big"

	"github.com/jeranaias/keyspace/internal/charset"
)

// Result is the outcome of one estimation. It is never mutated after
// Estimate returns it.
type Result struct {
	// Length is the number of characters (bytes) in the password.
	Length int
	// AlphabetSize is the sum of the alphabet sizes of the present categories.
	AlphabetSize int
	// Combinations is AlphabetSize^Length.
	Combinations *big.Int
	// Bits is floor(log2(Combinations)), or 0 when Combinations is 0.
	Bits int
}

// Estimate computes the search space for a password of the given length
// whose characters use the categories in p. A negative length counts as 0.
func Estimate(p charset.Presence, length int) Result {
	if length < 0 {
		length = 0
	}
	return compute(p.AlphabetSize(), length)
}

func compute(alphabet, length int) Result {
	// Exp defines 0^0 as 1, which is the convention wanted here.
	combos := new(big.Int).Exp(big.NewInt(int64(alphabet)), big.NewInt(int64(length)), nil)

	bits := 0
	if combos.Sign() > 0 {
		bits = combos.BitLen() - 1
	}

	return Result{
		Length:       length,
		AlphabetSize: alphabet,
		Combinations: combos,
		Bits:         bits,
	}
}

// Analyze classifies password and estimates its strength.
func Analyze(password string) Result {
	return Estimate(charset.Classify(password), len(password))
}

// Degenerate reports the unreachable case of a non-empty password with an
// empty alphabet, where log2 is undefined and Bits is reported as 0.
func (r Result) Degenerate() bool {
	return r.Combinations == nil || r.Combinations.Sign() == 0
}

// CombinationsString formats Combinations as a plain decimal integer:
// no exponent, no grouping, no fractional digits.
func (r Result) CombinationsString() string {
	if r.Combinations == nil {
		return "0"
	}
	return r.Combinations.String()
}

// EntropyBits returns the log-domain estimate Length*log2(AlphabetSize).
// It avoids building Combinations and is what the live meter displays.
func (r Result) EntropyBits() float64 {
	if r.Length == 0 || r.AlphabetSize <= 0 {
		return 0
	}
	return float64(r.Length) * math.Log2(float64(r.AlphabetSize))
}

// Rating returns the coarse strength level for the result's bits using the
// default thresholds.
func (r Result) Rating() Level {
	return DefaultThresholds().Rate(r.Bits)
}
