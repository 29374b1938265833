// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"io"

	"github.com/jeranaias/keyspace/internal/strength"
)

// WriteText writes the default report:
//
//	There are {combinations} combinations
//	That is equivalent to a key of {bits} bits
//
// Combinations are printed as a plain decimal integer.
func WriteText(w io.Writer, r strength.Result) error {
	if _, err := fmt.Fprintf(w, "There are %s combinations\n", r.CombinationsString()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "That is equivalent to a key of %d bits\n", r.Bits)
	return err
}
