// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jeranaias/keyspace/internal/charset"
	"github.com/jeranaias/keyspace/internal/strength"
)

// now is replaced in tests.
var now = time.Now

// Envelope is the standard JSON response format for every command.
type Envelope struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 UTC time the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewEnvelope creates a successful response.
func NewEnvelope(command string, data interface{}) *Envelope {
	return &Envelope{
		Success:   true,
		Data:      data,
		Timestamp: now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewErrorEnvelope creates an error response.
func NewErrorEnvelope(command string, err error) *Envelope {
	msg := err.Error()
	return &Envelope{
		Success:   false,
		Error:     &msg,
		Timestamp: now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the envelope as indented JSON followed by a newline.
func (e *Envelope) Write(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(e)
}

// Analysis is the data payload of a check result.
type Analysis struct {
	Length       int                `json:"length"`
	AlphabetSize int                `json:"alphabet_size"`
	Categories   []charset.Category `json:"categories"`
	// Combinations is a decimal string; it routinely exceeds float64 range.
	Combinations string         `json:"combinations"`
	Bits         int            `json:"bits"`
	EntropyBits  float64        `json:"entropy_bits"`
	Rating       strength.Level `json:"rating"`
	Degenerate   bool           `json:"degenerate,omitempty"`
}

// NewAnalysis builds the payload for r, rating it with t.
func NewAnalysis(r strength.Result, p charset.Presence, t strength.Thresholds) Analysis {
	cats := p.Categories()
	if cats == nil {
		cats = []charset.Category{}
	}
	return Analysis{
		Length:       r.Length,
		AlphabetSize: r.AlphabetSize,
		Categories:   cats,
		Combinations: r.CombinationsString(),
		Bits:         r.Bits,
		EntropyBits:  r.EntropyBits(),
		Rating:       t.Rate(r.Bits),
		Degenerate:   r.Degenerate(),
	}
}

// WriteJSON writes r inside a successful "check" envelope, rated with the
// default thresholds.
func WriteJSON(w io.Writer, r strength.Result, p charset.Presence) error {
	return NewEnvelope("check", NewAnalysis(r, p, strength.DefaultThresholds())).Write(w)
}
