// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/jeranaias/keyspace/internal/charset"
	"github.com/jeranaias/keyspace/internal/strength"
	"github.com/jeranaias/keyspace/internal/util"
)

// BreakdownOptions controls WriteBreakdown.
type BreakdownOptions struct {
	// Color enables ANSI styling. Callers turn it off for pipes and NO_COLOR.
	Color bool
	// Thresholds rate the result. The zero value means the defaults.
	Thresholds strength.Thresholds
}

// Palette for the breakdown table.
var (
	colorPresent = lipgloss.Color("42")  // green
	colorAbsent  = lipgloss.Color("243") // gray
	colorLabel   = lipgloss.Color("39")  // blue
)

// RatingColor returns the color used for a level.
func RatingColor(l strength.Level) lipgloss.Color {
	switch l {
	case strength.Weak:
		return lipgloss.Color("196")
	case strength.Fair:
		return lipgloss.Color("214")
	case strength.Good:
		return lipgloss.Color("226")
	case strength.Strong:
		return lipgloss.Color("42")
	default:
		return lipgloss.Color("51")
	}
}

// WriteBreakdown writes a per-category table followed by the grouped
// combination count, the log-domain entropy and the rating.
func WriteBreakdown(w io.Writer, r strength.Result, p charset.Presence, opts BreakdownOptions) error {
	renderer := lipgloss.NewRenderer(w)
	if opts.Color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	thresholds := opts.Thresholds
	if thresholds == (strength.Thresholds{}) {
		thresholds = strength.DefaultThresholds()
	}

	header := renderer.NewStyle().Bold(true)
	present := renderer.NewStyle().Foreground(colorPresent)
	absent := renderer.NewStyle().Foreground(colorAbsent)
	label := renderer.NewStyle().Foreground(colorLabel)

	names := []string{"Category"}
	for _, c := range charset.Categories() {
		names = append(names, c.String())
	}
	nameWidth := util.MaxWidth(names...)

	var b strings.Builder
	b.WriteString(header.Render(util.PadRight("Category", nameWidth) + "  Present  Size"))
	b.WriteByte('\n')

	for _, c := range charset.Categories() {
		style, mark := absent, "no"
		if p.Has(c) {
			style, mark = present, "yes"
		}
		row := fmt.Sprintf("%s  %-7s  %4d", util.PadRight(c.String(), nameWidth), mark, c.AlphabetSize())
		b.WriteString(style.Render(row))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	level := thresholds.Rate(r.Bits)
	rating := renderer.NewStyle().Bold(true).Foreground(RatingColor(level))

	fields := [][2]string{
		{"Length", strconv.Itoa(r.Length)},
		{"Alphabet size", strconv.Itoa(r.AlphabetSize)},
		{"Combinations", groupedCombinations(r)},
		{"Entropy", fmt.Sprintf("%.2f bits", r.EntropyBits())},
		{"Rating", rating.Render(level.String())},
	}
	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = f[0] + ":"
	}
	fieldWidth := util.MaxWidth(fieldNames...)
	for i, f := range fields {
		b.WriteString(label.Render(util.PadRight(fieldNames[i], fieldWidth)))
		b.WriteString(" ")
		b.WriteString(f[1])
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// groupedCombinations renders the exact count with thousands separators.
func groupedCombinations(r strength.Result) string {
	if r.Combinations == nil {
		return "0"
	}
	return humanize.BigComma(r.Combinations)
}
