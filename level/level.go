// Package level defines the debug levels used to decide whether a message is
// printed. Lower values are higher priority: a message at level L is printed
// iff L <= the active threshold.
package level

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Level is a message priority. AlwaysPrint is the highest, Verbose the lowest.
type Level int

const (
	// AlwaysPrint is printed no matter the threshold, e.g. "Starting application".
	AlwaysPrint Level = iota
	// Success is used when something succeeded.
	Success
	// Fatal is an unrecoverable error; printing it normally ends the run.
	Fatal
	// Error is an error the application can continue after.
	Error
	// Warning is something to pay attention to, but not critical.
	Warning
	// Info is general information.
	Info
	// Debug is for fairly verbose messages such as "Scanning DB..".
	Debug
	// Verbose is for everything else.
	Verbose
)

// ErrInvalid is returned when a level name or number is out of range.
var ErrInvalid = errors.New("invalid debug level")

var names = [...]string{
	AlwaysPrint: "always",
	Success:     "success",
	Fatal:       "fatal",
	Error:       "error",
	Warning:     "warning",
	Info:        "info",
	Debug:       "debug",
	Verbose:     "verbose",
}

// All returns every level from AlwaysPrint to Verbose.
func All() []Level {
	return []Level{AlwaysPrint, Success, Fatal, Error, Warning, Info, Debug, Verbose}
}

// String returns the lower-case name of the level.
func (l Level) String() string {
	if !l.Valid() {
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
	return names[l]
}

// Valid reports whether l is between AlwaysPrint and Verbose.
func (l Level) Valid() bool {
	return l >= AlwaysPrint && l <= Verbose
}

// Enabled reports whether a message at level l passes the given threshold.
func (l Level) Enabled(threshold Level) bool {
	return l <= threshold
}

// Parse converts a name ("always", "warning", "warn", ...) in any case, or a
// number from 0 to 7, into a Level.
func Parse(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warn" {
		return Warning, nil
	}
	for i, name := range names {
		if name == s {
			return Level(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return AlwaysPrint, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	l := Level(n)
	if !l.Valid() {
		return AlwaysPrint, fmt.Errorf("%w: %d must be between %d and %d", ErrInvalid, n, AlwaysPrint, Verbose)
	}
	return l, nil
}

// UnmarshalYAML accepts either a level name or its number.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := Parse(node.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML writes the level name.
func (l Level) MarshalYAML() (any, error) {
	return l.String(), nil
}

var _ pflag.Value = (*Level)(nil)

// Set implements pflag.Value.
func (l *Level) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Type implements pflag.Value.
func (l *Level) Type() string {
	return "level"
}
