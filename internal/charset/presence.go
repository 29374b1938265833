// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package charset

import "strings"

// Presence records which categories occur at least once in a password.
// The zero value has no categories present. Presence is comparable.
type Presence struct {
	flags [numCategories]bool
}

// Has reports whether category c is present.
func (p Presence) Has(c Category) bool {
	if !c.Valid() {
		return false
	}
	return p.flags[c]
}

// Set marks category c as present. Invalid categories are ignored.
func (p *Presence) Set(c Category) {
	if !c.Valid() {
		return
	}
	p.flags[c] = true
}

// Categories returns the present categories in priority order.
func (p Presence) Categories() []Category {
	var out []Category
	for i, ok := range p.flags {
		if ok {
			out = append(out, Category(i))
		}
	}
	return out
}

// Count returns the number of present categories.
func (p Presence) Count() int {
	n := 0
	for _, ok := range p.flags {
		if ok {
			n++
		}
	}
	return n
}

// AlphabetSize returns the sum of the alphabet sizes of the present categories.
func (p Presence) AlphabetSize() int {
	total := 0
	for i, ok := range p.flags {
		if ok {
			total += alphabetSizes[i]
		}
	}
	return total
}

// String returns the present category names joined with "+", or "none".
func (p Presence) String() string {
	cats := p.Categories()
	if len(cats) == 0 {
		return "none"
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, "+")
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// Classify scans password once and returns the categories it uses.
// Each byte sets exactly one flag.
func Classify(password string) Presence {
	var p Presence
	for i := 0; i < len(password); i++ {
		p.flags[CategoryOf(password[i])] = true
	}
	return p
}

// ClassifyWithOrder is Classify with a caller-supplied priority order.
// Other is always the fallback: entries for Other, invalid categories and
// duplicates in order are skipped.
func ClassifyWithOrder(password string, order []Category) Presence {
	tests := make([]Category, 0, len(order))
	var seen [numCategories]bool
	for _, c := range order {
		if !c.Valid() || c == Other || seen[c] {
			continue
		}
		seen[c] = true
		tests = append(tests, c)
	}

	var p Presence
	for i := 0; i < len(password); i++ {
		b := password[i]
		cat := Other
		for _, c := range tests {
			if c.matches(b) {
				cat = c
				break
			}
		}
		p.flags[cat] = true
	}
	return p
}
