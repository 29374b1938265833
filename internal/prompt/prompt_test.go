// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// flakyReader fails the first n reads before delegating.
type flakyReader struct {
	fails int
	r     io.Reader
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if f.fails > 0 {
		f.fails--
		return 0, errors.New("resource temporarily unavailable")
	}
	return f.r.Read(p)
}

// fakeTerminal records echo acquisitions and restores.
type fakeTerminal struct {
	acquired []bool
	restored int
	failWith error
}

func (ft *fakeTerminal) acquire(fd int, echo bool) (*EchoGuard, error) {
	if ft.failWith != nil {
		return nil, ft.failWith
	}
	ft.acquired = append(ft.acquired, echo)
	return newEchoGuard(func() error {
		ft.restored++
		return nil
	}), nil
}

func newTestReader(in io.Reader, out io.Writer, ft *fakeTerminal, opts ...Option) *Reader {
	r := New(in, out, opts...)
	if ft != nil {
		r.fd = 3
		r.acquire = ft.acquire
	}
	return r
}

// =============================================================================
// LINE READING
// =============================================================================

func TestReadPassword_Lines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "hunter2\n", "hunter2"},
		{"spaces and tabs", "a b\tc \n", "a b\tc "},
		{"crlf", "secret\r\n", "secret"},
		{"no trailing newline", "secret", "secret"},
		{"empty line", "\n", ""},
		{"only first line", "first\nsecond\n", "first"},
		{"high bytes", "p\xe4ss\n", "p\xe4ss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := newTestReader(strings.NewReader(tt.input), &out, nil)

			got, err := r.ReadPassword(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, PromptText, out.String())
		})
	}
}

func TestReadPassword_NoInput(t *testing.T) {
	var out bytes.Buffer
	r := newTestReader(strings.NewReader(""), &out, nil)

	_, err := r.ReadPassword(context.Background())
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Equal(t, PromptText, out.String())
}

// =============================================================================
// RETRY
// =============================================================================

func TestReadPassword_RetryAfterReadError(t *testing.T) {
	var out bytes.Buffer
	in := &flakyReader{fails: 1, r: strings.NewReader("secret\n")}
	r := newTestReader(in, &out, nil)

	got, err := r.ReadPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
	assert.Equal(t, PromptText+InvalidEntry+PromptText, out.String())
}

func TestReadPassword_RetryAfterLongLine(t *testing.T) {
	var out bytes.Buffer
	r := newTestReader(strings.NewReader("abcdefgh\nok\n"), &out, nil, WithMaxLineBytes(4))

	got, err := r.ReadPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, PromptText+InvalidEntry+PromptText, out.String())
}

func TestReadPassword_LongLineConsumedWhole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "tail longer than the discard limit",
			input: strings.Repeat("a", 200) + "\nok\n",
			want:  "ok",
		},
		{
			name:    "rejected line without newline",
			input:   strings.Repeat("a", 200),
			wantErr: ErrNoInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := newTestReader(strings.NewReader(tt.input), &out, nil,
				WithMaxLineBytes(64), WithDiscardLimit(80))

			got, err := r.ReadPassword(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, PromptText+InvalidEntry+PromptText, out.String())
		})
	}
}

func TestReadPassword_LineLimitIgnoresCR(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"abcd\r\n", "abcd"},
		{"abcd\r", "abcd"},
		{"abcde\r\nok\n", "ok"},
	}

	for _, tt := range tests {
		r := newTestReader(strings.NewReader(tt.input), io.Discard, nil, WithMaxLineBytes(4))
		got, err := r.ReadPassword(context.Background())
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestReadPassword_LineAtLimitAccepted(t *testing.T) {
	var out bytes.Buffer
	r := newTestReader(strings.NewReader("abcd\n"), &out, nil, WithMaxLineBytes(4))

	got, err := r.ReadPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcd", got)
}

func TestReadPassword_TooManyAttempts(t *testing.T) {
	var out bytes.Buffer
	in := &flakyReader{fails: 10, r: strings.NewReader("never\n")}
	r := newTestReader(in, &out, nil, WithMaxAttempts(3))

	_, err := r.ReadPassword(context.Background())
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, strings.Repeat(PromptText+InvalidEntry, 2)+PromptText, out.String())
}

func TestReadPassword_UnboundedRetry(t *testing.T) {
	var out bytes.Buffer
	in := &flakyReader{fails: 12, r: strings.NewReader("finally\n")}
	r := newTestReader(in, &out, nil, WithMaxAttempts(0))

	got, err := r.ReadPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "finally", got)
	assert.Equal(t, 12, strings.Count(out.String(), InvalidEntry))
}

func TestReadPassword_ContextCancelled(t *testing.T) {
	ft := &fakeTerminal{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestReader(strings.NewReader("secret\n"), io.Discard, ft)
	_, err := r.ReadPassword(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ft.restored, "guard must be released on early return")
}

// =============================================================================
// ECHO CONTROL
// =============================================================================

func TestReadPassword_HiddenInput(t *testing.T) {
	ft := &fakeTerminal{}
	var out bytes.Buffer
	r := newTestReader(strings.NewReader("secret\n"), &out, ft, WithHideInput(true))

	got, err := r.ReadPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
	assert.Equal(t, []bool{false}, ft.acquired)
	assert.Equal(t, 1, ft.restored)
	assert.Equal(t, PromptText+"\n", out.String())
}

func TestReadPassword_ShownInput(t *testing.T) {
	ft := &fakeTerminal{}
	var out bytes.Buffer
	r := newTestReader(strings.NewReader("secret\n"), &out, ft)

	_, err := r.ReadPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, ft.acquired)
	assert.Equal(t, 1, ft.restored)
	assert.Equal(t, PromptText, out.String())
}

func TestReadPassword_RestoredOnEveryPath(t *testing.T) {
	tests := []struct {
		name  string
		input io.Reader
		opts  []Option
	}{
		{"eof", strings.NewReader(""), nil},
		{"retry then success", &flakyReader{fails: 2, r: strings.NewReader("x\n")}, nil},
		{"exhausted", &flakyReader{fails: 5, r: strings.NewReader("x\n")}, []Option{WithMaxAttempts(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTerminal{}
			opts := append([]Option{WithHideInput(true)}, tt.opts...)
			r := newTestReader(tt.input, io.Discard, ft, opts...)

			_, _ = r.ReadPassword(context.Background())
			assert.Len(t, ft.acquired, 1)
			assert.Equal(t, 1, ft.restored)
		})
	}
}

func TestReadPassword_EchoUnsupported(t *testing.T) {
	ft := &fakeTerminal{failWith: ErrEchoUnsupported}
	var out bytes.Buffer
	r := newTestReader(strings.NewReader("secret\n"), &out, ft, WithHideInput(true))

	got, err := r.ReadPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
	assert.Equal(t, PromptText, out.String(), "no extra newline without a guard")
}

func TestNew_NonTerminalInputSkipsEcho(t *testing.T) {
	r := New(strings.NewReader(""), io.Discard)
	assert.Equal(t, -1, r.fd)

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, -1, New(f, io.Discard).fd)
}

func TestEchoGuard_ReleaseIdempotent(t *testing.T) {
	calls := 0
	g := newEchoGuard(func() error {
		calls++
		return nil
	})
	require.NoError(t, g.Release())
	require.NoError(t, g.Release())
	assert.Equal(t, 1, calls)

	var nilGuard *EchoGuard
	assert.NoError(t, nilGuard.Release())
}

func TestEchoGuard_SignalRestoresBeforeExit(t *testing.T) {
	exited := make(chan int, 1)
	exitFunc = func(code int) { exited <- code }
	defer func() { exitFunc = os.Exit }()

	restored := make(chan struct{}, 1)
	g := newEchoGuard(func() error {
		restored <- struct{}{}
		return nil
	})
	g.sigs <- os.Interrupt

	select {
	case code := <-exited:
		assert.Equal(t, ExitInterrupted, code)
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not trigger exit")
	}
	select {
	case <-restored:
	default:
		t.Fatal("terminal not restored before exit")
	}
}
