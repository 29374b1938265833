// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package meter provides a live password strength meter.
//
// The meter is a bubbletea program with a masked text input. Every keystroke
// re-runs classification and estimation on the current value and redraws the
// bar, the category summary and the rating. Enter submits the value so the
// caller can print the regular report; Esc or Ctrl+C aborts.
package meter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jeranaias/keyspace/internal/charset"
	"github.com/jeranaias/keyspace/internal/report"
	"github.com/jeranaias/keyspace/internal/strength"
)

// ErrAborted is returned by Run when the user leaves without submitting.
var ErrAborted = errors.New("meter aborted")

// maxGroupedDigits is the longest combination count shown digit for digit.
const maxGroupedDigits = 30

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			MarginTop(1)
)

// =============================================================================
// MODEL
// =============================================================================

// Options configures the meter.
type Options struct {
	// Thresholds rate the live result. The zero value means the defaults.
	Thresholds strength.Thresholds
	// MaxLength caps the input in characters. 0 means 4096.
	MaxLength int
	// Reveal starts with the input shown instead of masked.
	Reveal bool
}

// Outcome is what the user left the meter with.
type Outcome struct {
	Password  string
	Submitted bool
}

// Model is the bubbletea model for the meter.
type Model struct {
	input      textinput.Model
	bar        progress.Model
	thresholds strength.Thresholds

	presence charset.Presence
	result   strength.Result

	reveal    bool
	submitted bool
	aborted   bool
}

// New creates a focused meter model.
func New(opts Options) Model {
	thresholds := opts.Thresholds
	if thresholds == (strength.Thresholds{}) {
		thresholds = strength.DefaultThresholds()
	}
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = 4096
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "start typing a password"
	ti.CharLimit = maxLen
	ti.Width = 48
	ti.EchoCharacter = '•'
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	ti.Focus()

	m := Model{
		input:      ti,
		bar:        progress.New(progress.WithSolidFill(string(report.RatingColor(strength.Weak))), progress.WithoutPercentage(), progress.WithWidth(48)),
		thresholds: thresholds,
		reveal:     opts.Reveal,
	}
	m.applyEchoMode()
	m.recompute()
	return m
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.reveal = !m.reveal
			m.applyEchoMode()
			return m, nil
		}

	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > 64 {
			width = 64
		}
		if width < 16 {
			width = 16
		}
		m.bar.Width = width
		m.input.Width = width
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.recompute()
	}
	return m, cmd
}

// View renders the meter. Nothing is drawn once the user has left so the
// value does not linger on screen.
func (m Model) View() string {
	if m.submitted || m.aborted {
		return ""
	}

	level := m.thresholds.Rate(m.result.Bits)
	ratingStyle := lipgloss.NewStyle().Bold(true).Foreground(report.RatingColor(level))

	bar := m.bar
	bar.FullColor = string(report.RatingColor(level))

	var b strings.Builder
	b.WriteString(titleStyle.Render("keyspace meter"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(bar.ViewAs(m.fill()))
	b.WriteString("  ")
	b.WriteString(ratingStyle.Render(level.String()))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Categories", m.presence.String()},
		{"Alphabet size", fmt.Sprintf("%d", m.result.AlphabetSize)},
		{"Combinations", formatCombinations(m.result)},
		{"Key length", fmt.Sprintf("%d bits (%.2f bits entropy)", m.result.Bits, m.result.EntropyBits())},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row[0] + ":"))
		b.WriteString(valueStyle.Render(row[1]))
		b.WriteString("\n")
	}

	reveal := "reveal"
	if m.reveal {
		reveal = "hide"
	}
	b.WriteString(helpStyle.Render("enter: analyze  ctrl+r: " + reveal + "  esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// Result returns the estimate for the current value.
func (m Model) Result() strength.Result {
	return m.result
}

// Presence returns the categories in the current value.
func (m Model) Presence() charset.Presence {
	return m.presence
}

// Outcome returns the value and whether it was submitted.
func (m Model) Outcome() Outcome {
	return Outcome{Password: m.input.Value(), Submitted: m.submitted}
}

func (m *Model) recompute() {
	value := m.input.Value()
	m.presence = charset.Classify(value)
	m.result = strength.Estimate(m.presence, len(value))
}

func (m *Model) applyEchoMode() {
	if m.reveal {
		m.input.EchoMode = textinput.EchoNormal
	} else {
		m.input.EchoMode = textinput.EchoPassword
	}
}

// fill maps entropy onto the bar; the excellent threshold fills it.
func (m Model) fill() float64 {
	if m.thresholds.Excellent <= 0 {
		return 0
	}
	return math.Min(m.result.EntropyBits()/float64(m.thresholds.Excellent), 1)
}

// formatCombinations groups short counts and abbreviates long ones to a
// power of ten.
func formatCombinations(r strength.Result) string {
	if r.Combinations == nil {
		return "0"
	}
	digits := r.CombinationsString()
	if len(digits) <= maxGroupedDigits {
		return humanize.BigComma(r.Combinations)
	}
	return fmt.Sprintf("~10^%d", len(digits)-1)
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run drives the meter on in and out until the user submits or aborts, or
// ctx is cancelled.
func Run(ctx context.Context, opts Options, in io.Reader, out io.Writer) (Outcome, error) {
	p := tea.NewProgram(
		New(opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("meter: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Outcome{}, fmt.Errorf("meter: unexpected model %T", final)
	}
	if m.aborted {
		return Outcome{}, ErrAborted
	}
	return m.Outcome(), nil
}
