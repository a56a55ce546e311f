package console

import (
	"strings"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/textwidth"
)

// Logger prints messages with a severity. *Console implements it.
type Logger interface {
	Success(content any, opts ...Option) error
	Fatal(content any, opts ...Option) error
	Error(content any, opts ...Option) error
	Warning(content any, opts ...Option) error
	Info(content any, opts ...Option) error
	Debug(content any, opts ...Option) error
	Verbose(content any, opts ...Option) error
}

var _ Logger = (*Console)(nil)

type severity struct {
	prefix string
	color  ansi.Color
}

var severities = map[level.Level]severity{
	level.Success: {"SUCCESS", ansi.Green},
	level.Fatal:   {"FATAL", ansi.Red},
	level.Error:   {"ERROR", ansi.LightRed},
	level.Warning: {"WARNING", ansi.Yellow},
	level.Info:    {"INFO", ansi.LightGreen},
	level.Debug:   {"DEBUG", ansi.Standard},
	level.Verbose: {"VERBOSE", ansi.LightPurple},
}

// Option changes how a single message is printed.
type Option func(*options)

type options struct {
	prefix     string
	color      ansi.Color
	background ansi.Color
	pad        bool
}

// WithPrefix replaces the severity label. An empty prefix prints none.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithColor replaces the text colour.
func WithColor(c ansi.Color) Option {
	return func(o *options) { o.color = c }
}

// WithBackground replaces the background colour.
func WithBackground(c ansi.Color) Option {
	return func(o *options) { o.background = c }
}

// WithoutPadding leaves continuation lines unindented.
func WithoutPadding() Option {
	return func(o *options) { o.pad = false }
}

func (c *Console) logOptions(l level.Level, opts []Option) options {
	o := options{pad: true}
	if s, ok := severities[l]; ok {
		o.prefix = s.prefix
		o.color = s.color
		o.background = ansi.Standard
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Log prints content as a line at level l with that level's label and
// colour. Continuation lines are indented to start under the first line's
// content.
func (c *Console) Log(l level.Level, content any, opts ...Option) error {
	if !c.enabled(l) {
		return nil
	}
	o := c.logOptions(l, opts)

	text := ValueOf(content).render()
	if o.pad && !c.disablePadding {
		text = padContinuation(text, c.paddingWidth(o.prefix))
	}

	return c.PrintLine(Message{
		Level:      l,
		Content:    Text(text),
		Text:       o.color,
		Background: o.background,
		Prefix:     o.prefix,
	})
}

// paddingWidth is the column where message content starts: after the
// timestamp and the "PREFIX: " label.
func (c *Console) paddingWidth(prefix string) int {
	width := c.TimestampWidth()
	if prefix != "" {
		width += textwidth.VisibleWidth(prefix) + 2
	}
	return width
}

func padContinuation(text string, width int) string {
	lines := textwidth.SplitLines(text)
	if len(lines) == 1 {
		return text
	}
	pad := strings.Repeat(" ", width)
	for i := 1; i < len(lines); i++ {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

// Success prints a SUCCESS line in green.
func (c *Console) Success(content any, opts ...Option) error {
	return c.Log(level.Success, content, opts...)
}

// Fatal prints a FATAL line in red. With exit-on-fatal set it returns a
// *FatalError that the caller must treat as the end of the run.
func (c *Console) Fatal(content any, opts ...Option) error {
	return c.Log(level.Fatal, content, opts...)
}

// FatalSilent prints a FATAL line without requesting an exit. The
// exit-on-fatal setting is restored afterwards.
func (c *Console) FatalSilent(content any, opts ...Option) error {
	exit := c.exitOnFatal
	c.exitOnFatal = false
	defer func() { c.exitOnFatal = exit }()

	return c.Log(level.Fatal, content, opts...)
}

// Error prints an ERROR line in light red.
func (c *Console) Error(content any, opts ...Option) error {
	return c.Log(level.Error, content, opts...)
}

// Warning prints a WARNING line in yellow.
func (c *Console) Warning(content any, opts ...Option) error {
	return c.Log(level.Warning, content, opts...)
}

// Info prints an INFO line in light green.
func (c *Console) Info(content any, opts ...Option) error {
	return c.Log(level.Info, content, opts...)
}

// Debug prints a DEBUG line in the default colour.
func (c *Console) Debug(content any, opts ...Option) error {
	return c.Log(level.Debug, content, opts...)
}

// Verbose prints a VERBOSE line in light purple.
func (c *Console) Verbose(content any, opts ...Option) error {
	return c.Log(level.Verbose, content, opts...)
}
