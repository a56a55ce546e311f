package ansi

import (
	"fmt"
	"strings"
)

// Span is a run of text in a single style.
type Span struct {
	Text  string
	Style Style
}

// Builder composes a message from differently styled spans. It keeps a
// current style and a saved one; Write can override the current style for a
// single span.
//
// A Builder is meant to be filled, rendered once with String, and dropped.
type Builder struct {
	spans   []Span
	current Style
	saved   Style
}

// NewBuilder returns a builder whose current style is s.
func NewBuilder(s Style) *Builder {
	return &Builder{current: s, saved: Style{Text: Standard, Background: Standard}}
}

// Current returns the style the next Write will use.
func (b *Builder) Current() Style {
	return b.current
}

// SetColor changes the current text and background colour.
func (b *Builder) SetColor(text, background Color) *Builder {
	b.current.Text = text
	b.current.Background = background
	return b
}

// SetAttr changes the current attribute.
func (b *Builder) SetAttr(a Attr) *Builder {
	b.current.Attr = a
	return b
}

func (b *Builder) Bold() *Builder       { return b.SetAttr(AttrBold) }
func (b *Builder) Dim() *Builder        { return b.SetAttr(AttrDim) }
func (b *Builder) Underscore() *Builder { return b.SetAttr(AttrUnderscore) }
func (b *Builder) Blink() *Builder      { return b.SetAttr(AttrBlink) }
func (b *Builder) Reverse() *Builder    { return b.SetAttr(AttrReverse) }
func (b *Builder) Hidden() *Builder     { return b.SetAttr(AttrHidden) }

// ResetColor sets both colours back to standard.
func (b *Builder) ResetColor() *Builder {
	return b.SetColor(Standard, Standard)
}

// ResetAttr clears the current attribute.
func (b *Builder) ResetAttr() *Builder {
	return b.SetAttr(AttrNone)
}

// Reset clears colours and attribute.
func (b *Builder) Reset() *Builder {
	return b.ResetColor().ResetAttr()
}

// SaveColor remembers the current colours.
func (b *Builder) SaveColor() *Builder {
	b.saved.Text = b.current.Text
	b.saved.Background = b.current.Background
	return b
}

// SaveAttr remembers the current attribute.
func (b *Builder) SaveAttr() *Builder {
	b.saved.Attr = b.current.Attr
	return b
}

// Save remembers the whole current style.
func (b *Builder) Save() *Builder {
	return b.SaveColor().SaveAttr()
}

// RevertColor restores the saved colours.
func (b *Builder) RevertColor() *Builder {
	return b.SetColor(b.saved.Text, b.saved.Background)
}

// RevertAttr restores the saved attribute.
func (b *Builder) RevertAttr() *Builder {
	return b.SetAttr(b.saved.Attr)
}

// Revert restores the saved style.
func (b *Builder) Revert() *Builder {
	return b.RevertColor().RevertAttr()
}

// Write appends text in the current style. If an override is given, its set
// colours and attribute apply to this span only.
func (b *Builder) Write(text string, override ...Style) *Builder {
	style := b.current
	for _, o := range override {
		if o.Text != 0 || o.Background != 0 {
			style.Text = o.Text
			style.Background = o.Background
		}
		if o.Attr != AttrNone {
			style.Attr = o.Attr
		}
	}
	b.spans = append(b.spans, Span{Text: text, Style: style})
	return b
}

// Writef appends formatted text in the current style.
func (b *Builder) Writef(format string, args ...any) *Builder {
	return b.Write(fmt.Sprintf(format, args...))
}

// WriteLine appends text followed by a newline.
func (b *Builder) WriteLine(text string, override ...Style) *Builder {
	return b.Write(text+"\n", override...)
}

// WriteBool appends YES on green or NO on red.
func (b *Builder) WriteBool(v bool) *Builder {
	if v {
		return b.Write("YES", NewStyle(White, Green))
	}
	return b.Write("NO", NewStyle(White, Red))
}

// Spans returns a copy of the spans written so far.
func (b *Builder) Spans() []Span {
	out := make([]Span, len(b.spans))
	copy(out, b.spans)
	return out
}

// String renders the spans. The result starts with a reset so earlier
// terminal state cannot leak into the first span, and every later change of
// style resets before selecting the new one, so an attribute or background
// never outlives its span.
func (b *Builder) String() string {
	var sb strings.Builder
	sb.WriteString(Reset())
	for i, span := range b.spans {
		switch {
		case i == 0:
			sb.WriteString(span.Style.Encode())
		case span.Style != b.spans[i-1].Style:
			sb.WriteString(span.Style.ResetTo())
		}
		sb.WriteString(span.Text)
	}
	return sb.String()
}
