// Package progress draws progress indicators through a console: a percent
// meter on a single redrawn line, bars with nested sub-bars, and a task list
// with a status line per task.
//
// Everything is drawn synchronously. Redrawing clears the previous output
// and prints it again; nothing is drawn in the background.
package progress

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/textwidth"
)

// MinWidth is the narrowest the meter bar gets, however small the terminal.
const MinWidth = 50

var (
	// ErrNotStarted is returned when a meter is set or ended before Start.
	ErrNotStarted = errors.New("progress meter not started")
	// ErrAlreadyStarted is returned by Start on a running meter.
	ErrAlreadyStarted = errors.New("progress meter already started")
)

// Screen is the part of *console.Console the indicators draw through.
type Screen interface {
	PrintText(m console.Message) error
	PrintLine(m console.Message) error
	Info(content any, opts ...console.Option) error
	NewLine() error
	CheckScheduledNewline() error
	ClearLine() error
	ClearLastLine() error
	Columns() int
	TimestampWidth() int
	DebugLevel() level.Level
	UTF8() bool
}

var _ Screen = (*console.Console)(nil)

// MeterOption configures a Meter.
type MeterOption func(*Meter)

// MeterLevel sets the level the meter line prints at. The default is INFO.
func MeterLevel(l level.Level) MeterOption {
	return func(m *Meter) { m.level = l }
}

// MeterColor sets the meter colours.
func MeterColor(text, background ansi.Color) MeterOption {
	return func(m *Meter) { m.style = ansi.NewStyle(text, background) }
}

// MeterClock prints a timestamp in front of the meter.
func MeterClock(show bool) MeterOption {
	return func(m *Meter) { m.showClock = show }
}

// MeterGlyphs sets the bar and tip glyphs. The defaults are '=' and '>'.
func MeterGlyphs(bar, tip rune) MeterOption {
	return func(m *Meter) { m.bar, m.tip = bar, tip }
}

// Meter is a percent meter drawn on one line:
//
//	42% [=====================>                             ] Copying
type Meter struct {
	screen    Screen
	level     level.Level
	style     ansi.Style
	showClock bool
	bar       rune
	tip       rune

	running     bool
	drawn       bool
	paddingLeft int
}

// NewMeter returns a stopped meter drawing on s.
func NewMeter(s Screen, opts ...MeterOption) *Meter {
	m := &Meter{screen: s, level: level.Info, bar: '=', tip: '>'}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Running reports whether the meter has been started and not ended.
func (m *Meter) Running() bool {
	return m.running
}

// Start prints message as an INFO line, or an empty line when message is
// empty, and draws the meter at 0%.
func (m *Meter) Start(message string) error {
	if m.running {
		return ErrAlreadyStarted
	}

	var err error
	if message != "" {
		err = m.screen.Info(message)
	} else {
		err = m.screen.NewLine()
	}
	if err != nil {
		return err
	}

	m.running = true
	m.drawn = false
	m.paddingLeft = 0
	if m.showClock {
		m.paddingLeft = m.screen.TimestampWidth()
	}
	return m.Set(0, "Starting..")
}

// Set redraws the meter at percent, clamped to 0-100, followed by message.
func (m *Meter) Set(percent float64, message string) error {
	if !m.running {
		return ErrNotStarted
	}
	if !m.level.Enabled(m.screen.DebugLevel()) {
		return nil
	}

	if m.drawn {
		if err := m.screen.ClearLine(); err != nil {
			return err
		}
	}
	if err := m.screen.CheckScheduledNewline(); err != nil {
		return err
	}

	stamp := console.TimestampOff
	if m.showClock {
		stamp = console.TimestampOn
	}
	err := m.screen.PrintText(console.Message{
		Level:      m.level,
		Content:    console.Text(m.Render(percent, message)),
		Text:       m.style.Text,
		Background: m.style.Background,
		Timestamp:  stamp,
	})
	if err != nil {
		return err
	}
	m.drawn = true
	return nil
}

// End draws the meter at 100% with "Finished!" and ends the line.
func (m *Meter) End() error {
	if !m.running {
		return ErrNotStarted
	}
	if err := m.Set(100, "Finished!"); err != nil {
		return err
	}
	m.running = false
	if !m.level.Enabled(m.screen.DebugLevel()) {
		return nil
	}
	return m.screen.NewLine()
}

// Render returns the meter line for percent and message. The bar fills
// the columns left after the labels and the clock, but is never narrower
// than MinWidth. NaN renders as 0%.
func (m *Meter) Render(percent float64, message string) string {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = min(100, max(0, percent))

	prepend := fmt.Sprintf("%d%% [", int(math.Round(percent)))
	appendix := "] " + message + " "

	width := m.screen.Columns() - textwidth.VisibleWidth(prepend) - textwidth.VisibleWidth(appendix) - m.paddingLeft
	width = max(MinWidth, width)
	filled := int(math.Round(float64(width) * percent / 100))

	var b strings.Builder
	b.WriteString(prepend)
	b.WriteString(strings.Repeat(string(m.bar), filled))
	if filled < width {
		b.WriteRune(m.tip)
		b.WriteString(strings.Repeat(" ", width-filled-1))
	}
	b.WriteString(appendix)
	return b.String()
}
