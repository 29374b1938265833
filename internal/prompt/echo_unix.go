// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package prompt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setEcho flips ECHO in the local modes of fd and returns a function that
// writes the saved attributes back with ECHO forced on.
func setEcho(fd int, on bool) (func() error, error) {
	saved, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal attributes: %w", err)
	}

	attrs := *saved
	if on {
		attrs.Lflag |= unix.ECHO
	} else {
		attrs.Lflag &^= unix.ECHO
	}
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &attrs); err != nil {
		return nil, fmt.Errorf("failed to set terminal echo: %w", err)
	}

	restore := func() error {
		back := *saved
		back.Lflag |= unix.ECHO
		if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &back); err != nil {
			return fmt.Errorf("failed to restore terminal attributes: %w", err)
		}
		return nil
	}
	return restore, nil
}
