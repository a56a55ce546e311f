// Package testutil provides testing utilities for termkit packages.
//
// This package includes:
//   - Buffer, a writer that records every Flush so tests can assert that a
//     line was flushed before the run ended
//   - FixedClock and StepClock for deterministic timestamps
//   - CaptureOutput for code that writes to os.Stdout directly
//
// Example usage:
//
//	func TestPrintLine(t *testing.T) {
//	    var out testutil.Buffer
//	    c := console.New(&out, console.Options{
//	        Clock: testutil.FixedClock(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
//	    })
//	    _ = c.Info("hello")
//	    assert.Equal(t, 1, out.Flushes())
//	}
package testutil
