package console

import (
	"strings"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/textwidth"
)

// BannerOption configures FullLineMessage.
type BannerOption func(*banner)

type banner struct {
	color       ansi.Color
	background  ansi.Color
	level       level.Level
	brackets    bool
	glyph       string
	padTopBelow bool
}

// BannerColor sets the banner colours.
func BannerColor(text, background ansi.Color) BannerOption {
	return func(b *banner) { b.color, b.background = text, background }
}

// BannerLevel prints the banner only up to the given debug level.
func BannerLevel(l level.Level) BannerOption {
	return func(b *banner) { b.level = l }
}

// BannerBrackets turns the [ ] around the text on or off.
func BannerBrackets(on bool) BannerOption {
	return func(b *banner) { b.brackets = on }
}

// BannerGlyph sets the fill glyph. Multi-rune glyphs repeat as a pattern.
func BannerGlyph(glyph string) BannerOption {
	return func(b *banner) {
		if glyph != "" {
			b.glyph = glyph
		}
	}
}

// BannerFrame adds a full line of fill above and below the text.
func BannerFrame(on bool) BannerOption {
	return func(b *banner) { b.padTopBelow = on }
}

// FullLineMessage prints text centred on a line of fill glyphs as wide as
// the terminal, by default "-" with brackets and a framing line above and
// below:
//
//	--------------------------------
//	------------[START]-------------
//	--------------------------------
func (c *Console) FullLineMessage(text string, opts ...BannerOption) error {
	b := banner{level: level.AlwaysPrint, brackets: true, glyph: "-", padTopBelow: true}
	for _, opt := range opts {
		opt(&b)
	}

	if b.brackets {
		text = "[" + text + "]"
	}
	columns := c.Columns()
	missing := max(columns-textwidth.VisibleWidth(text), 0)
	left := missing / 2

	lines := []string{fill(b.glyph, left) + text + fill(b.glyph, missing-left)}
	if b.padTopBelow {
		frame := fill(b.glyph, columns)
		lines = []string{frame, lines[0], frame}
	}

	for _, line := range lines {
		err := c.PrintLine(Message{
			Level:      b.level,
			Content:    Text(line),
			Text:       b.color,
			Background: b.background,
			Timestamp:  TimestampOff,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Separator prints a line of glyph across the terminal. An empty glyph
// means "-" and a zero colour means light red.
func (c *Console) Separator(glyph string, color ansi.Color) error {
	if glyph == "" {
		glyph = "-"
	}
	if color == 0 {
		color = ansi.LightRed
	}
	return c.PrintLine(Message{
		Level:     level.AlwaysPrint,
		Content:   Text(fill(glyph, c.Columns())),
		Text:      color,
		Timestamp: TimestampOff,
	})
}

// fill repeats the runes of glyph until n runes are written, cutting the
// last repetition short.
func fill(glyph string, n int) string {
	runes := []rune(glyph)
	if len(runes) == 0 || n <= 0 {
		return ""
	}
	var b strings.Builder
	for i := range n {
		b.WriteRune(runes[i%len(runes)])
	}
	return b.String()
}
