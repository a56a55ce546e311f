package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/cursor"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/textwidth"
)

// TimestampMode controls the timestamp in front of a message.
type TimestampMode int

const (
	// TimestampAuto prints a timestamp from PrintText, and from PrintLine
	// only when the previous output ended its line.
	TimestampAuto TimestampMode = iota
	// TimestampOn always prints a timestamp.
	TimestampOn
	// TimestampOff never prints a timestamp.
	TimestampOff
)

// Message is one unit of output.
type Message struct {
	Level level.Level
	// Content is any Go value; see ValueOf.
	Content any
	// Text and Background default to the console colours when zero.
	Text       ansi.Color
	Background ansi.Color
	Attr       ansi.Attr
	// Prefix is printed as "Prefix: " in front of the content.
	Prefix    string
	Timestamp TimestampMode
}

func (m Message) style(defaults ansi.Style) ansi.Style {
	return ansi.Style{Text: m.Text, Background: m.Background, Attr: m.Attr}.WithDefaults(defaults)
}

// PrintText writes m without a trailing newline. Messages above the debug
// level are dropped without output.
func (c *Console) PrintText(m Message) error {
	if !c.enabled(m.Level) {
		return nil
	}
	err := c.printText(m, m.Timestamp != TimestampOff)
	if !IsFatal(err) {
		c.atLineStart = false
	}
	return err
}

// PrintLine writes m followed by a newline and flushes. A scheduled newline
// is written first.
func (c *Console) PrintLine(m Message) error {
	if !c.enabled(m.Level) {
		return nil
	}
	if err := c.CheckScheduledNewline(); err != nil {
		return err
	}

	stamp := m.Timestamp == TimestampOn || (m.Timestamp == TimestampAuto && c.atLineStart)
	if err := c.printText(m, stamp); err != nil {
		return err
	}
	return c.NewLine()
}

// Write prints content at level.AlwaysPrint without a timestamp and leaves
// the line open.
func (c *Console) Write(content any, opts ...Option) error {
	o := c.logOptions(level.AlwaysPrint, opts)
	return c.PrintText(Message{
		Level:      level.AlwaysPrint,
		Content:    content,
		Text:       o.color,
		Background: o.background,
		Timestamp:  TimestampOff,
	})
}

// WriteLine prints content at level.AlwaysPrint as a timestamped line.
func (c *Console) WriteLine(content any, opts ...Option) error {
	o := c.logOptions(level.AlwaysPrint, opts)
	return c.PrintLine(Message{
		Level:      level.AlwaysPrint,
		Content:    content,
		Text:       o.color,
		Background: o.background,
		Prefix:     o.prefix,
		Timestamp:  TimestampOn,
	})
}

// NewLine ends the current line.
func (c *Console) NewLine() error {
	if _, err := io.WriteString(c.w, "\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return c.endLine()
}

// PrintBlock prints a multi-line block, such as a rendered table, as whole
// lines without a timestamp.
func (c *Console) PrintBlock(l level.Level, text string, style ansi.Style) error {
	return c.PrintLine(Message{
		Level:      l,
		Content:    Text(text),
		Text:       style.Text,
		Background: style.Background,
		Attr:       style.Attr,
		Timestamp:  TimestampOff,
	})
}

// ScheduleNewline defers a newline until the next call that starts a new
// line, so an open line can still be completed by a later call.
func (c *Console) ScheduleNewline() {
	c.newlineScheduled = true
}

// NewlineScheduled reports whether a newline is pending.
func (c *Console) NewlineScheduled() bool {
	return c.newlineScheduled
}

// CheckScheduledNewline writes the pending newline, if any.
func (c *Console) CheckScheduledNewline() error {
	if !c.newlineScheduled {
		return nil
	}
	c.newlineScheduled = false
	return c.NewLine()
}

// Cursor writes a cursor control sequence from the cursor package. Nothing
// is written when ANSI is disabled.
func (c *Console) Cursor(sequence string) error {
	if c.disableANSI {
		return nil
	}
	if err := cursor.Write(c.w, sequence); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// ClearLastLine moves to the previous line and clears it, ready to be
// printed again. Without ANSI it does nothing and the next line is printed
// below.
func (c *Console) ClearLastLine() error {
	if err := c.Cursor(cursor.ClearLastLine()); err != nil {
		return err
	}
	c.atLineStart = true
	return nil
}

// MarkLineStart records that something outside the console, such as a
// terminal echoing typed input, ended the current line.
func (c *Console) MarkLineStart() {
	c.atLineStart = true
	c.newlineScheduled = false
}

// ClearLine erases the open line and returns to its start. Without ANSI the
// open line is ended instead, so the next output starts below it.
func (c *Console) ClearLine() error {
	if c.disableANSI {
		if c.atLineStart {
			return nil
		}
		return c.NewLine()
	}
	if err := c.Cursor(cursor.Column(1) + cursor.ClearLine(cursor.Entire)); err != nil {
		return err
	}
	c.atLineStart = true
	return nil
}

func (c *Console) enabled(l level.Level) bool {
	if l.Enabled(c.threshold) {
		return true
	}
	if c.observer != nil {
		c.observer.Dropped(l)
	}
	return false
}

// printText renders and writes one message. The level has been checked.
func (c *Console) printText(m Message, stamp bool) error {
	style := m.style(c.defaults)

	var out strings.Builder
	if stamp {
		out.WriteString(c.timestamp())
	}

	content := ValueOf(m.Content).render()
	body := content
	if m.Prefix != "" {
		body = m.Prefix + ": " + content
	}

	composed := c.plugins.Mutate(style.Encode() + body)
	composed = strings.ReplaceAll(composed, ansi.Reset(), style.ResetTo())
	out.WriteString(composed)
	out.WriteString(ansi.Reset())

	text := out.String()
	if c.disableANSI {
		text = textwidth.Strip(text)
	}

	if _, err := io.WriteString(c.w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if c.observer != nil {
		c.observer.Emitted(m.Level, len(text))
	}

	if m.Level == level.Fatal && c.exitOnFatal {
		return c.requestExit(textwidth.Strip(content))
	}
	return nil
}

// timestamp returns "HH:MM:SS,ffff " in light gray.
func (c *Console) timestamp() string {
	t := c.now()
	s := t.Format("15:04:05")
	if c.timeDecimals > 0 {
		frac := fmt.Sprintf("%09d", t.Nanosecond())
		s += "," + frac[:c.timeDecimals]
	}
	return ansi.Encode(ansi.LightGray, ansi.Standard, ansi.AttrNone) + s + " "
}

func (c *Console) endLine() error {
	c.atLineStart = true
	return c.flush()
}

func (c *Console) flush() error {
	if f, ok := c.w.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}
	return nil
}
