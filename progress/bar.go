package progress

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/level"
)

// BarWidth is the number of glyphs in a Bar.
const BarWidth = 50

const (
	barComplete   = "█"
	barIncomplete = "░"
)

// BarOption configures a Bar.
type BarOption func(*Bar)

// BarColor sets the bar colours. Sub-bars inherit unset colours from their
// parent.
func BarColor(text, background ansi.Color) BarOption {
	return func(b *Bar) { b.style = ansi.NewStyle(text, background) }
}

// BarLevel sets the level the bar prints at. The default is
// level.AlwaysPrint.
func BarLevel(l level.Level) BarOption {
	return func(b *Bar) { b.level = l }
}

// BarStart sets the starting value.
func BarStart(current float64) BarOption {
	return func(b *Bar) { b.current = current }
}

// BarMessage sets the message shown after the bar.
func BarMessage(message string) BarOption {
	return func(b *Bar) { b.message = message }
}

// Bar is a fixed width progress bar counting towards a total:
//
//	█████████████████████████░░░░░░░░░░░░░░░░░░░░░░░░░ | Files | 5 / 10 (50.00%)
//
// A bar may have one sub-bar, drawn on the line below it. Any change to a
// bar or its sub-bars redraws the whole stack from the top bar down.
type Bar struct {
	screen  Screen
	level   level.Level
	style   ansi.Style
	current float64
	total   float64
	message string

	parent   *Bar
	sub      *Bar
	disposed bool

	// lines on screen, tracked by the top bar
	drawn int
}

// NewBar returns a bar counting to total. Nothing is drawn until Draw or a
// setter is called.
func NewBar(s Screen, total float64, opts ...BarOption) *Bar {
	b := &Bar{screen: s, total: total, level: level.AlwaysPrint}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sub creates a sub-bar below b, replacing any previous one. Colours and
// level are inherited unless set by opts.
func (b *Bar) Sub(total float64, opts ...BarOption) *Bar {
	sub := &Bar{screen: b.screen, total: total, level: b.level, style: b.style, parent: b}
	for _, opt := range opts {
		opt(sub)
	}
	sub.style = sub.style.WithDefaults(b.style)
	b.sub = sub
	return sub
}

// Current returns the current value.
func (b *Bar) Current() float64 {
	return b.current
}

// SetCurrent sets the value and redraws.
func (b *Bar) SetCurrent(current float64) error {
	b.current = current
	return b.Draw()
}

// Advance adds delta to the value and redraws.
func (b *Bar) Advance(delta float64) error {
	return b.SetCurrent(b.current + delta)
}

// SetMessage replaces the message and redraws.
func (b *Bar) SetMessage(message string) error {
	b.message = message
	return b.Draw()
}

// Dispose removes the bar from the screen. A disposed sub-bar is detached
// from its parent and the stack is redrawn without it.
func (b *Bar) Dispose() error {
	if b.disposed {
		return nil
	}
	b.disposed = true
	if b.parent != nil {
		if b.parent.sub == b {
			b.parent.sub = nil
		}
		return b.top().redraw()
	}
	err := b.clear()
	b.drawn = 0
	return err
}

// Disposed reports whether Dispose has been called.
func (b *Bar) Disposed() bool {
	return b.disposed
}

// Draw redraws the stack b belongs to.
func (b *Bar) Draw() error {
	if b.disposed {
		return nil
	}
	return b.top().redraw()
}

func (b *Bar) top() *Bar {
	for b.parent != nil {
		b = b.parent
	}
	return b
}

func (b *Bar) clear() error {
	for range b.drawn {
		if err := b.screen.ClearLastLine(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bar) redraw() error {
	if b.disposed {
		return nil
	}
	if err := b.clear(); err != nil {
		return err
	}
	b.drawn = 0

	for bar := b; bar != nil && !bar.disposed; bar = bar.sub {
		if !bar.level.Enabled(bar.screen.DebugLevel()) {
			continue
		}
		err := bar.screen.PrintLine(console.Message{
			Level:      bar.level,
			Content:    console.Text(bar.String()),
			Text:       bar.style.Text,
			Background: bar.style.Background,
			Timestamp:  console.TimestampOff,
		})
		if err != nil {
			return err
		}
		b.drawn++
	}
	return nil
}

// Fraction returns current/total clamped to 0-1. A bar with no total is
// at 0.
func (b *Bar) Fraction() float64 {
	if b.total <= 0 {
		return 0
	}
	return min(1, max(0, b.current/b.total))
}

// String renders the bar line.
func (b *Bar) String() string {
	fraction := b.Fraction()
	filled := int(math.Floor(BarWidth * fraction))

	counts := fmt.Sprintf("%s / %s (%.2f%%)", formatCount(b.current), formatCount(b.total), fraction*100)
	if b.message != "" {
		counts = b.message + " | " + counts
	}
	return strings.Repeat(barComplete, filled) + strings.Repeat(barIncomplete, BarWidth-filled) + " | " + counts
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
