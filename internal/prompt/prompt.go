// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt acquires a password from an interactive terminal.
//
// A Reader prints the prompt, reads one line (spaces and tabs included),
// and retries on transient input failures. When the input is a terminal it
// holds an EchoGuard for the whole read so local echo is set as requested
// and restored on every exit path.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"
)

// Text written to the output stream.
const (
	PromptText   = "Please enter the password: "
	InvalidEntry = "Invalid entry! Please try again!\n"
)

// Defaults for Reader options.
const (
	DefaultMaxAttempts  = 5
	DefaultMaxLineBytes = 4096
	DefaultDiscardLimit = 80
)

var (
	// ErrNoInput means the input stream ended before any byte was read.
	ErrNoInput = errors.New("no password entered: end of input")

	// ErrTooManyAttempts means every allowed attempt hit an input failure.
	ErrTooManyAttempts = errors.New("too many invalid entries")

	errLineTooLong = errors.New("line exceeds maximum length")
)

// acquireFunc matches AcquireEcho; tests substitute a fake terminal.
type acquireFunc func(fd int, echo bool) (*EchoGuard, error)

// Reader prompts for and reads a single password line.
type Reader struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	logger *log.Logger

	hide         bool
	maxAttempts  int
	maxLineBytes int
	discardLimit int

	acquire acquireFunc
}

// Option configures a Reader.
type Option func(*Reader)

// WithHideInput suppresses local echo while the password is typed.
func WithHideInput(hide bool) Option {
	return func(r *Reader) { r.hide = hide }
}

// WithMaxAttempts bounds the number of prompts. 0 retries forever.
func WithMaxAttempts(n int) Option {
	return func(r *Reader) {
		if n >= 0 {
			r.maxAttempts = n
		}
	}
}

// WithMaxLineBytes sets the longest accepted line. Longer lines count as an
// invalid entry.
func WithMaxLineBytes(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxLineBytes = n
		}
	}
}

// WithDiscardLimit sets how many pending bytes are dropped after an invalid
// read before re-prompting. Over-long lines are always consumed whole.
func WithDiscardLimit(n int) Option {
	return func(r *Reader) {
		if n >= 0 {
			r.discardLimit = n
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTerminal marks fd as the terminal to control echo on. A negative fd
// disables echo control.
func WithTerminal(fd int) Option {
	return func(r *Reader) { r.fd = fd }
}

// New creates a Reader. If in is an *os.File attached to a terminal, echo
// control targets it unless WithTerminal overrides the choice.
func New(in io.Reader, out io.Writer, opts ...Option) *Reader {
	r := &Reader{
		in:           bufio.NewReader(in),
		out:          out,
		fd:           terminalFD(in),
		logger:       log.New(io.Discard, "", 0),
		maxAttempts:  DefaultMaxAttempts,
		maxLineBytes: DefaultMaxLineBytes,
		discardLimit: DefaultDiscardLimit,
		acquire:      AcquireEcho,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func terminalFD(in io.Reader) int {
	f, ok := in.(*os.File)
	if !ok {
		return -1
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return -1
	}
	return fd
}

// ReadPassword prompts until a line is read, the attempts run out, the
// input ends, or ctx is done. The terminal is restored before it returns.
func (r *Reader) ReadPassword(ctx context.Context) (string, error) {
	guard := r.acquireEcho()
	defer func() {
		if err := guard.Release(); err != nil {
			r.logger.Printf("ECHO_RESTORE_FAILED | fd=%d error=%v", r.fd, err)
		}
	}()

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if _, err := io.WriteString(r.out, PromptText); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := r.readLine()
		if err == nil {
			if guard != nil && r.hide {
				// The user's newline was not echoed.
				fmt.Fprintln(r.out)
			}
			r.logger.Printf("INPUT_ACCEPTED | attempt=%d length=%d", attempt, len(line))
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			r.logger.Printf("INPUT_EOF | attempt=%d", attempt)
			return "", ErrNoInput
		}

		r.logger.Printf("INPUT_INVALID | attempt=%d reason=%v", attempt, err)
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return "", fmt.Errorf("%w: %d attempts", ErrTooManyAttempts, attempt)
		}

		if !errors.Is(err, errLineTooLong) {
			r.discard()
		}
		if _, werr := io.WriteString(r.out, InvalidEntry); werr != nil {
			return "", fmt.Errorf("failed to write prompt: %w", werr)
		}
	}
}

// acquireEcho returns nil when there is no terminal or echo control fails;
// a nil guard releases as a no-op.
func (r *Reader) acquireEcho() *EchoGuard {
	if r.fd < 0 || r.acquire == nil {
		return nil
	}
	guard, err := r.acquire(r.fd, !r.hide)
	if err != nil {
		r.logger.Printf("ECHO_UNAVAILABLE | fd=%d error=%v", r.fd, err)
		return nil
	}
	if r.hide {
		r.logger.Printf("ECHO_DISABLED | fd=%d", r.fd)
	} else {
		r.logger.Printf("ECHO_ENABLED | fd=%d", r.fd)
	}
	return guard
}

// readLine reads up to and excluding '\n'. A final line without a newline
// is returned as is; io.EOF is returned only when nothing was read. A line
// longer than maxLineBytes is consumed through its newline and rejected.
func (r *Reader) readLine() (string, error) {
	var buf []byte
	tooLong := false
	for {
		b, err := r.in.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				break
			}
			return "", err
		}
		if b == '\n' {
			break
		}
		if tooLong {
			continue
		}
		// One byte past the limit is kept for the '\r' of a CRLF ending.
		if len(buf) > r.maxLineBytes {
			tooLong = true
			buf = nil
			continue
		}
		buf = append(buf, b)
	}

	if n := len(buf); n > 0 && buf[n-1] == '\r' {
		buf = buf[:n-1]
	}
	if tooLong || len(buf) > r.maxLineBytes {
		return "", errLineTooLong
	}
	return string(buf), nil
}

// discard drops up to discardLimit buffered bytes, stopping after a newline.
// Only bytes already buffered are dropped so an interactive terminal is
// never blocked on.
func (r *Reader) discard() {
	for i := 0; i < r.discardLimit && r.in.Buffered() > 0; i++ {
		b, err := r.in.ReadByte()
		if err != nil || b == '\n' {
			return
		}
	}
}
