// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package prompt

// setEcho is unavailable without termios; input proceeds with echo unchanged.
func setEcho(fd int, on bool) (func() error, error) {
	return nil, ErrEchoUnsupported
}
