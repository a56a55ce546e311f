// Package termsize tracks the terminal's rows and columns.
//
// Sizes come from, in order: a static pin set by the application (for
// example from --cli-columns), the LINES/COLUMNS environment variables,
// the terminal itself, and finally configured fallbacks. Probing is
// repeated at most once per refresh interval.
package termsize

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
	"golang.org/x/time/rate"
)

// Fallback sizes used when nothing better is known.
const (
	DefaultRows     = 24
	DefaultColumns  = 80
	DefaultInterval = 2 * time.Minute
)

// ProbeFunc reports the terminal width and height.
type ProbeFunc func() (columns, rows int, err error)

// Options configures a Tracker. Zero fields take the package defaults.
type Options struct {
	FallbackRows    int
	FallbackColumns int
	// Interval between probes. Negative disables refreshing after the
	// first probe.
	Interval time.Duration
	Lookup   func(key string) (string, bool)
	Probe    ProbeFunc
}

// StdoutProbe asks the terminal attached to stdout for its size.
func StdoutProbe() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Tracker caches the terminal size. It is safe for concurrent use.
type Tracker struct {
	opts      Options
	sometimes *rate.Sometimes

	mu           sync.RWMutex
	rows         int
	columns      int
	staticRows   int
	staticCols   int
	lastUpdate   time.Time
	lastFromTerm bool
}

// New creates a tracker. The first probe happens on the first read.
func New(opts Options) *Tracker {
	if opts.FallbackRows <= 0 {
		opts.FallbackRows = DefaultRows
	}
	if opts.FallbackColumns <= 0 {
		opts.FallbackColumns = DefaultColumns
	}
	if opts.Interval == 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}
	if opts.Probe == nil {
		opts.Probe = StdoutProbe
	}

	s := &rate.Sometimes{}
	if opts.Interval > 0 {
		s.Interval = opts.Interval
	}
	return &Tracker{
		opts:      opts,
		sometimes: s,
		rows:      opts.FallbackRows,
		columns:   opts.FallbackColumns,
	}
}

// SetStatic pins the size. A value of zero or less leaves that dimension
// tracked.
func (t *Tracker) SetStatic(rows, columns int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staticRows = max(rows, 0)
	t.staticCols = max(columns, 0)
}

// Columns returns the terminal width, refreshing it if it is stale.
func (t *Tracker) Columns() int {
	t.sometimes.Do(t.Update)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.staticCols > 0 {
		return t.staticCols
	}
	return t.columns
}

// Rows returns the terminal height, refreshing it if it is stale.
func (t *Tracker) Rows() int {
	t.sometimes.Do(t.Update)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.staticRows > 0 {
		return t.staticRows
	}
	return t.rows
}

// Update probes the size now.
func (t *Tracker) Update() {
	rows, rowsOK := t.env("LINES")
	cols, colsOK := t.env("COLUMNS")

	fromTerm := false
	if !rowsOK || !colsOK {
		if w, h, err := t.opts.Probe(); err == nil && w > 0 && h > 0 {
			fromTerm = true
			if !rowsOK {
				rows, rowsOK = h, true
			}
			if !colsOK {
				cols, colsOK = w, true
			}
		}
	}
	if !rowsOK {
		rows = t.opts.FallbackRows
	}
	if !colsOK {
		cols = t.opts.FallbackColumns
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	t.columns = cols
	t.lastUpdate = time.Now()
	t.lastFromTerm = fromTerm
}

// LastUpdate returns when the size was last probed and whether the
// terminal answered.
func (t *Tracker) LastUpdate() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastUpdate, t.lastFromTerm
}

func (t *Tracker) env(key string) (int, bool) {
	v, ok := t.opts.Lookup(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
