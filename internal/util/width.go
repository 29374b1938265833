// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the display width of s in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces to width display cells. Strings already at or
// past width are returned unchanged.
func PadRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// MaxWidth returns the widest display width among ss.
func MaxWidth(ss ...string) int {
	maxW := 0
	for _, s := range ss {
		if w := runewidth.StringWidth(s); w > maxW {
			maxW = w
		}
	}
	return maxW
}
