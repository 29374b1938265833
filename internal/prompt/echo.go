// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ErrEchoUnsupported is returned by AcquireEcho on platforms without termios.
var ErrEchoUnsupported = errors.New("terminal echo control not supported on this platform")

// exitFunc is replaced in tests so the signal path can be observed.
var exitFunc = os.Exit

// ExitInterrupted is the status used when a signal arrives while the guard
// is held (128 + SIGINT).
const ExitInterrupted = 130

// =============================================================================
// ECHO GUARD - SCOPED TERMINAL ECHO STATE
// =============================================================================

// EchoGuard holds the terminal's local echo setting for the duration of a
// read. Release puts the saved attributes back with echo enabled. It is safe
// to call Release more than once; only the first call touches the terminal.
//
// While held, SIGINT and SIGTERM also release the guard before the process
// exits, so an interrupted hidden prompt never leaves the shell without echo.
type EchoGuard struct {
	restore func() error

	once    sync.Once
	err     error
	sigs    chan os.Signal
	stopped chan struct{}
}

// AcquireEcho saves the attributes of terminal fd and sets local echo on or
// off. The caller must defer Release.
func AcquireEcho(fd int, echo bool) (*EchoGuard, error) {
	restore, err := setEcho(fd, echo)
	if err != nil {
		return nil, err
	}
	return newEchoGuard(restore), nil
}

func newEchoGuard(restore func() error) *EchoGuard {
	g := &EchoGuard{
		restore: restore,
		sigs:    make(chan os.Signal, 1),
		stopped: make(chan struct{}),
	}
	signal.Notify(g.sigs, os.Interrupt, syscall.SIGTERM)
	go g.watch()
	return g
}

func (g *EchoGuard) watch() {
	select {
	case <-g.sigs:
		g.Release()
		exitFunc(ExitInterrupted)
	case <-g.stopped:
	}
}

// Release restores the terminal and stops watching for signals.
func (g *EchoGuard) Release() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		signal.Stop(g.sigs)
		close(g.stopped)
		if g.restore != nil {
			g.err = g.restore()
		}
	})
	return g.err
}
