// Package testutil provides helpers for testing code that renders to a
// terminal: an in-memory writer that records flushes, clocks that return
// fixed times, and stdout capture.
package testutil

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// Buffer is an in-memory writer with a Flush method. It records how many
// times it was flushed and what had been written at each flush, so tests
// can check that a line reached the stream before something else happened.
type Buffer struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	flushes []int
}

// Write appends p to the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// Flush records the current length.
func (b *Buffer) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushes = append(b.flushes, b.buf.Len())
	return nil
}

// String returns everything written so far.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines splits the output on "\n", dropping a trailing empty line.
func (b *Buffer) Lines() []string {
	s := strings.TrimSuffix(b.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Flushes returns how many times Flush was called.
func (b *Buffer) Flushes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.flushes)
}

// FlushedAt returns the output length at each flush.
func (b *Buffer) FlushedAt() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, len(b.flushes))
	copy(out, b.flushes)
	return out
}

// Unflushed reports whether anything was written after the last flush.
func (b *Buffer) Unflushed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.flushes) == 0 {
		return b.buf.Len() > 0
	}
	return b.flushes[len(b.flushes)-1] != b.buf.Len()
}

// Reset clears output and flush history.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
	b.flushes = nil
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// StepClock returns a clock that starts at t and advances by step on every
// call after the first.
func StepClock(t time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := t
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

// CaptureOutput captures stdout during function execution.
// It redirects os.Stdout to a pipe, executes the function, and returns the captured output.
// Stdout is always restored, even if the function returns an error.
//
// Example:
//
//	output := testutil.CaptureOutput(t, func() error {
//	    return cmd.Execute()
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	os.Stdout = w

	// buffered to avoid goroutine leak
	outCh := make(chan string, 1)
	go func() {
		var output strings.Builder
		buf := make([]byte, 1024)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				output.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		outCh <- output.String()
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout

	output := <-outCh

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}

	return output
}
