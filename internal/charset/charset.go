// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charset

import (
	"fmt"
	"strings"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category identifies one of the seven character classes.
// The declaration order is the classification priority order.
type Category int

const (
	Digit Category = iota
	Lower
	Upper
	Punct
	Space
	Tab
	Other

	numCategories = int(Other) + 1
)

// alphabetSizes maps each category to its assumed number of symbols.
var alphabetSizes = [numCategories]int{
	Digit: 10,
	Lower: 26,
	Upper: 26,
	Punct: 32,
	Space: 1,
	Tab:   1,
	Other: 1, // arbitrary; bytes >= 128 alone could be far more
}

var categoryNames = [numCategories]string{
	Digit: "digit",
	Lower: "lower",
	Upper: "upper",
	Punct: "punct",
	Space: "space",
	Tab:   "tab",
	Other: "other",
}

// Categories returns all categories in priority order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the seven defined categories.
func (c Category) Valid() bool {
	return c >= Digit && c <= Other
}

// AlphabetSize returns the number of symbols assumed for the category.
// Invalid categories have size 0.
func (c Category) AlphabetSize() int {
	if !c.Valid() {
		return 0
	}
	return alphabetSizes[c]
}

// String returns the stable lowercase name of the category.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler so categories render by name
// in JSON and TOML.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory parses a category name as produced by String.
// Matching is case-insensitive.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown character category: %q", name)
}

// =============================================================================
// PER-BYTE TESTS
// =============================================================================

// matches reports whether b belongs to category c. Other matches every byte.
func (c Category) matches(b byte) bool {
	switch c {
	case Digit:
		return b >= '0' && b <= '9'
	case Lower:
		return b >= 'a' && b <= 'z'
	case Upper:
		return b >= 'A' && b <= 'Z'
	case Punct:
		return isPunct(b)
	case Space:
		return b == ' '
	case Tab:
		return b == '\t'
	case Other:
		return true
	}
	return false
}

// isPunct matches the 32 printable ASCII symbols, the same set as C ispunct
// in the "C" locale.
func isPunct(b byte) bool {
	return (b >= '!' && b <= '/') ||
		(b >= ':' && b <= '@') ||
		(b >= '[' && b <= '`') ||
		(b >= '{' && b <= '~')
}

// CategoryOf returns the category a single byte is counted in.
func CategoryOf(b byte) Category {
	for c := Digit; c < Other; c++ {
		if c.matches(b) {
			return c
		}
	}
	return Other
}
