// Package console prints severity-tagged, timestamped and coloured lines to
// a terminal.
//
// A Console owns all output state: the debug level threshold, padding and
// banner switches, the output plugin chain and whether the cursor is at the
// start of a line. Nothing is global; create one Console per output stream.
//
// Printing a message at level.Fatal while exit-on-fatal is set returns a
// *FatalError. The console never exits the process itself; the caller (the
// app package) decides what a fatal result means.
package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/listview"
	"github.com/jongio/termkit/logutil"
	"github.com/jongio/termkit/plugin"
	"github.com/jongio/termkit/table"
	"github.com/jongio/termkit/termsize"
)

// DefaultTimeDecimals is the number of fractional second digits in
// timestamps.
const DefaultTimeDecimals = 4

// maxTimeDecimals is the nanosecond resolution of time.Time.
const maxTimeDecimals = 9

// Sizer reports the terminal width. *termsize.Tracker implements it.
type Sizer interface {
	Columns() int
}

// Observer is told about every message the console prints or filters out.
// *metrics.Recorder implements it.
type Observer interface {
	Emitted(l level.Level, n int)
	Dropped(l level.Level)
	FatalRequested()
}

// Flusher is implemented by writers that buffer, such as *bufio.Writer.
// The console flushes after every complete line.
type Flusher interface {
	Flush() error
}

// Options configure a Console. Start from DefaultOptions; the zero value
// prints only level.AlwaysPrint messages.
type Options struct {
	// DebugLevel is the threshold: messages above it are dropped.
	DebugLevel level.Level
	// TextColor and Background are used when a message leaves them unset.
	TextColor  ansi.Color
	Background ansi.Color
	// TimeDecimals is the number of fractional second digits, 0 to 9.
	TimeDecimals int
	// DisableANSI strips every escape sequence before writing.
	DisableANSI bool
	// UTF8 allows glyphs such as ✔ in progress messages.
	UTF8 bool
	// ShowPaddingBanners draws the START and END banners around a run.
	ShowPaddingBanners bool
	// DisableMessagePadding stops aligning continuation lines.
	DisableMessagePadding bool
	// ExitOnFatal makes fatal messages return a *FatalError.
	ExitOnFatal bool

	Sizer    Sizer
	Clock    func() time.Time
	Observer Observer
	// Logger receives internal diagnostics. Nil disables them.
	Logger *logutil.ComponentLogger
	// Wait blocks for d or until ctx is done. It backs Sleep; nil uses a
	// timer.
	Wait func(ctx context.Context, d time.Duration) error
}

// DefaultOptions returns the production defaults: everything up to
// level.Verbose is printed, timestamps carry four decimals, banners are on
// and fatal messages request an exit.
func DefaultOptions() Options {
	return Options{
		DebugLevel:         level.Verbose,
		TextColor:          ansi.Standard,
		Background:         ansi.Standard,
		TimeDecimals:       DefaultTimeDecimals,
		ShowPaddingBanners: true,
		ExitOnFatal:        true,
	}
}

// Console writes messages to one output stream. It is not safe for
// concurrent use.
type Console struct {
	w        io.Writer
	sizer    Sizer
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
	observer Observer
	log      *logutil.ComponentLogger
	plugins  plugin.Chain

	threshold      level.Level
	defaults       ansi.Style
	timeDecimals   int
	disableANSI    bool
	utf8           bool
	showBanners    bool
	disablePadding bool
	exitOnFatal    bool

	atLineStart      bool
	newlineScheduled bool
}

// New creates a console writing to w.
func New(w io.Writer, opts Options) *Console {
	c := &Console{
		w:              w,
		sizer:          opts.Sizer,
		now:            opts.Clock,
		wait:           opts.Wait,
		observer:       opts.Observer,
		log:            opts.Logger,
		threshold:      opts.DebugLevel,
		defaults:       ansi.NewStyle(orStandard(opts.TextColor), orStandard(opts.Background)),
		timeDecimals:   min(max(opts.TimeDecimals, 0), maxTimeDecimals),
		disableANSI:    opts.DisableANSI,
		utf8:           opts.UTF8,
		showBanners:    opts.ShowPaddingBanners,
		disablePadding: opts.DisableMessagePadding,
		exitOnFatal:    opts.ExitOnFatal,
		atLineStart:    true,
	}
	if c.sizer == nil {
		c.sizer = fixedWidth(termsize.DefaultColumns)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.wait == nil {
		c.wait = sleepContext
	}
	if !c.threshold.Valid() {
		c.threshold = level.Verbose
	}
	return c
}

type fixedWidth int

func (f fixedWidth) Columns() int { return int(f) }

func orStandard(c ansi.Color) ansi.Color {
	if c == 0 {
		return ansi.Standard
	}
	return c
}

// SetDebugLevel sets the threshold. Invalid levels are rejected with an
// error wrapping level.ErrInvalid and leave the threshold unchanged.
func (c *Console) SetDebugLevel(l level.Level) error {
	if !l.Valid() {
		return fmt.Errorf("set debug level: %w: %d", level.ErrInvalid, int(l))
	}
	c.log.Debug("debug level changed", "from", c.threshold.String(), "to", l.String())
	c.threshold = l
	return nil
}

// DebugLevel returns the threshold.
func (c *Console) DebugLevel() level.Level {
	return c.threshold
}

// SetShowPaddingBanners turns the START and END banners on or off.
func (c *Console) SetShowPaddingBanners(show bool) {
	c.showBanners = show
}

// ShowPaddingBanners reports whether banners are drawn.
func (c *Console) ShowPaddingBanners() bool {
	return c.showBanners
}

// DisableMessagePadding turns continuation line padding off or on and
// returns the previous setting, so callers can restore it.
func (c *Console) DisableMessagePadding(disable bool) bool {
	old := c.disablePadding
	c.disablePadding = disable
	return old
}

// MessagePaddingDisabled reports whether continuation lines are left as is.
func (c *Console) MessagePaddingDisabled() bool {
	return c.disablePadding
}

// SetDisableANSI turns escape sequence stripping on or off.
func (c *Console) SetDisableANSI(disable bool) {
	c.disableANSI = disable
}

// ANSIDisabled reports whether escape sequences are stripped.
func (c *Console) ANSIDisabled() bool {
	return c.disableANSI
}

// SetExitOnFatal sets whether fatal messages return a *FatalError.
func (c *Console) SetExitOnFatal(exit bool) {
	c.exitOnFatal = exit
}

// ExitOnFatal reports whether fatal messages return a *FatalError.
func (c *Console) ExitOnFatal() bool {
	return c.exitOnFatal
}

// SetUTF8 allows or forbids non-ASCII glyphs in generated output.
func (c *Console) SetUTF8(utf8 bool) {
	c.utf8 = utf8
}

// UTF8 reports whether non-ASCII glyphs may be used.
func (c *Console) UTF8() bool {
	return c.utf8
}

// TimeDecimals returns the number of fractional second digits.
func (c *Console) TimeDecimals() int {
	return c.timeDecimals
}

// TimestampWidth returns the visible width of a timestamp, trailing space
// included: 10 plus the decimals, or 9 without decimals.
func (c *Console) TimestampWidth() int {
	if c.timeDecimals > 0 {
		return 10 + c.timeDecimals
	}
	return 9
}

// Columns returns the terminal width.
func (c *Console) Columns() int {
	if n := c.sizer.Columns(); n > 0 {
		return n
	}
	return termsize.DefaultColumns
}

// Plugins returns the output plugin chain.
func (c *Console) Plugins() *plugin.Chain {
	return &c.plugins
}

// AddOutputPlugin compiles pattern and appends it to the plugin chain.
func (c *Console) AddOutputPlugin(pattern string, fn plugin.Transform) error {
	if err := c.plugins.Add(pattern, fn); err != nil {
		return err
	}
	c.log.Debug("output plugin registered", "pattern", pattern, "plugins", c.plugins.Len())
	return nil
}

// Table starts a table that prints through this console.
func (c *Console) Table(rows ...table.Row) *table.Table {
	return table.New(rows...).SetLogger(c.log.WithOperation("table"))
}

// ListView starts a list view that prints through this console.
func (c *Console) ListView(data any) *listview.ListView {
	return listview.New(data)
}
