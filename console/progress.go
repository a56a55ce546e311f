package console

import (
	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/level"
)

// ProgressMessage is a line printed in two parts: the task when it starts
// and the outcome when it ends, as in "Computing.. ✔ Success".
type ProgressMessage struct {
	c          *Console
	level      level.Level
	color      ansi.Color
	background ansi.Color
	err        error
}

// Progress starts an INFO progress message.
func (c *Console) Progress(content any, opts ...Option) *ProgressMessage {
	return c.ProgressAt(level.Info, content, opts...)
}

// ProgressAt starts a progress message at level l, labelled and coloured
// like the other messages of that level. The line is left open with a
// scheduled newline.
func (c *Console) ProgressAt(l level.Level, content any, opts ...Option) *ProgressMessage {
	o := c.logOptions(l, opts)
	p := &ProgressMessage{c: c, level: l, color: o.color, background: o.background}

	if !c.enabled(l) {
		return p
	}
	if p.err = c.CheckScheduledNewline(); p.err != nil {
		return p
	}
	p.err = c.PrintText(Message{
		Level:      l,
		Content:    content,
		Text:       o.color,
		Background: o.background,
		Prefix:     o.prefix,
		Timestamp:  TimestampOn,
	})
	if p.err == nil {
		c.ScheduleNewline()
	}
	return p
}

// Err returns the error from printing the start of the message.
func (p *ProgressMessage) Err() error {
	return p.err
}

// Message completes the line with message in light cyan.
func (p *ProgressMessage) Message(message string) error {
	return p.suffix("", "", message, ansi.LightCyan)
}

// Success completes the line with "✔", or "Success" without UTF-8, followed
// by message.
func (p *ProgressMessage) Success(message string) error {
	return p.suffix("✔", "Success", message, ansi.LightGreen)
}

// Error completes the line with "✖", or "Error" without UTF-8, followed by
// message.
func (p *ProgressMessage) Error(message string) error {
	return p.suffix("✖", "Error", message, ansi.LightRed)
}

func (p *ProgressMessage) suffix(icon, fallback, message string, color ansi.Color) error {
	intro := fallback
	if p.c.utf8 && icon != "" {
		intro = icon
	}

	end := message
	if intro != "" {
		end = intro
		if message != "" {
			end += " " + message
		}
	}
	if end == "" {
		return nil
	}

	if !p.c.enabled(p.level) {
		return nil
	}
	err := p.c.PrintText(Message{
		Level:      p.level,
		Content:    Text(ansi.Enclose(" "+end, color, ansi.Standard, ansi.AttrNone)),
		Text:       p.color,
		Background: p.background,
		Timestamp:  TimestampOff,
	})
	if err == nil {
		p.c.ScheduleNewline()
	}
	return err
}
