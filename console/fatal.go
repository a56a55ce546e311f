package console

import (
	"errors"
	"fmt"
	"io"
)

// FatalError is returned when a fatal message was printed while exit-on-fatal
// was set. The output has been flushed by the time it is returned.
type FatalError struct {
	// Message is the printed content without escape sequences.
	Message string
}

func (e *FatalError) Error() string {
	return "fatal: " + e.Message
}

// IsFatal reports whether err is or wraps a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// requestExit ends the fatal line, flushes and clears exit-on-fatal so any
// output printed while shutting down cannot request a second exit.
func (c *Console) requestExit(message string) error {
	if _, err := io.WriteString(c.w, "\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	c.atLineStart = true
	c.newlineScheduled = false
	if err := c.flush(); err != nil {
		return err
	}

	c.exitOnFatal = false
	if c.observer != nil {
		c.observer.FatalRequested()
	}
	c.log.Info("fatal message printed, requesting exit")

	return &FatalError{Message: message}
}
