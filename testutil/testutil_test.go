package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestBuffer(t *testing.T) {
	var b Buffer

	if b.Unflushed() {
		t.Error("empty buffer should not report unflushed output")
	}

	fmt.Fprint(&b, "one\n")
	if !b.Unflushed() {
		t.Error("expected unflushed output after write")
	}

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	fmt.Fprint(&b, "two\n")
	_ = b.Flush()

	if b.Unflushed() {
		t.Error("expected everything flushed")
	}
	if got := b.Flushes(); got != 2 {
		t.Errorf("expected 2 flushes, got %d", got)
	}
	if got := b.FlushedAt(); len(got) != 2 || got[0] != 4 || got[1] != 8 {
		t.Errorf("unexpected flush offsets: %v", got)
	}
	if got := b.Lines(); len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Errorf("unexpected lines: %q", got)
	}

	b.Reset()
	if b.String() != "" || b.Flushes() != 0 || b.Lines() != nil {
		t.Error("expected Reset to clear output and flush history")
	}
}

func TestClocks(t *testing.T) {
	start := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	fixed := FixedClock(start)
	if !fixed().Equal(start) || !fixed().Equal(start) {
		t.Error("fixed clock moved")
	}

	step := StepClock(start, time.Second)
	first, second, third := step(), step(), step()
	if !first.Equal(start) {
		t.Errorf("expected first tick at start, got %v", first)
	}
	if second.Sub(first) != time.Second || third.Sub(second) != time.Second {
		t.Errorf("expected one second steps, got %v %v %v", first, second, third)
	}
}

func TestCaptureOutput(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			fmt.Println("test output")
			return nil
		})

		if !strings.Contains(output, "test output") {
			t.Errorf("expected output to contain 'test output', got: %s", output)
		}
	})

	t.Run("restores stdout on error", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			fmt.Print("before error")
			return errors.New("test error")
		})

		if output != "before error" {
			t.Errorf("expected 'before error', got: %q", output)
		}
	})

	t.Run("handles empty output", func(t *testing.T) {
		output := CaptureOutput(t, func() error {
			return nil
		})

		if output != "" {
			t.Errorf("expected empty output, got: %s", output)
		}
	})
}
