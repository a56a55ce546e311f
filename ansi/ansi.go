// Package ansi encodes colours and text attributes into ANSI SGR escape
// sequences and provides a builder for composing runs of differently styled
// text.
//
// Colours are bit patterns: a hue bit optionally combined with Light, so
// IsLight is a single bitwise test. Standard means "inherit the terminal
// default" and emits no colour code.
package ansi

import (
	"slices"
	"strconv"
	"strings"
)

// Escape is the control sequence introducer used by every sequence this
// package produces.
const Escape = "\x1b["

// Color is a text or background colour.
type Color uint16

const (
	// Standard is the terminal's own colour.
	Standard Color = 1 << 0
	// Light is OR'd with a hue to get its bright variant.
	Light Color = 1 << 1

	Black     Color = 1 << 4
	Red       Color = 1 << 5
	Green     Color = 1 << 6
	Yellow    Color = 1 << 7
	Blue      Color = 1 << 8
	Purple    Color = 1 << 9
	Cyan      Color = 1 << 10
	LightGray Color = 1 << 11

	Brown   = Yellow
	Magenta = Purple

	Gray         = Black | Light
	LightRed     = Red | Light
	LightGreen   = Green | Light
	LightYellow  = Yellow | Light
	LightBrown   = LightYellow
	LightBlue    = Blue | Light
	LightPurple  = Purple | Light
	LightMagenta = LightPurple
	LightCyan    = Cyan | Light
	White        = LightGray | Light
)

var hues = []Color{Black, Red, Green, Yellow, Blue, Purple, Cyan, LightGray}

// IsLight reports whether the light bit is set.
func (c Color) IsLight() bool {
	return c&Light != 0
}

// IsStandard reports whether c emits no colour code. The zero value counts as
// standard.
func (c Color) IsStandard() bool {
	return c == 0 || c&Standard != 0
}

// hue returns 0-7 for the colour's hue, or -1 if it has none.
func (c Color) hue() int {
	for i, h := range hues {
		if c&h != 0 {
			return i
		}
	}
	return -1
}

// Attr is a text attribute. The zero value, AttrNone, emits nothing.
type Attr uint8

const (
	AttrNone Attr = iota
	AttrReset
	AttrBold
	AttrDim
	AttrUnderscore
	AttrBlink
	AttrReverse
	AttrHidden
)

// AttrBright is the same code as bold on most terminals.
const AttrBright = AttrBold

var attrCodes = map[Attr]int{
	AttrReset:      0,
	AttrBold:       1,
	AttrDim:        2,
	AttrUnderscore: 4,
	AttrBlink:      5,
	AttrReverse:    7,
	AttrHidden:     8,
}

// Code returns the SGR parameter for the attribute and whether it has one.
func (a Attr) Code() (int, bool) {
	code, ok := attrCodes[a]
	return code, ok
}

// Encode returns the escape sequence selecting the given colours and
// attribute. Parameters are sorted ascending so a reset attribute always comes
// first; with nothing to select it returns the bare reset sequence.
func Encode(text, background Color, attr Attr) string {
	var codes []int

	if code, ok := attr.Code(); ok {
		codes = append(codes, code)
	}
	if text.IsLight() || background.IsLight() {
		codes = append(codes, 1)
	}
	if !text.IsStandard() {
		if h := text.hue(); h >= 0 {
			codes = append(codes, 30+h)
		}
	}
	if !background.IsStandard() {
		if h := background.hue(); h >= 0 {
			codes = append(codes, 40+h)
		}
	}
	if len(codes) == 0 {
		codes = append(codes, 0)
	}

	slices.Sort(codes)
	codes = slices.Compact(codes)

	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = strconv.Itoa(code)
	}
	return Sequence(strings.Join(parts, ";"))
}

// Sequence wraps SGR parameters into an escape sequence.
func Sequence(params string) string {
	return Escape + params + "m"
}

// Reset returns the sequence turning off all attributes and colours.
func Reset() string {
	return Escape + "0m"
}

// ResetTo resets and then re-selects the given style, so text after a nested
// reset continues in a known colour. Without a non-standard colour or an
// attribute it is the bare reset.
func ResetTo(text, background Color, attr Attr) string {
	if text.IsStandard() && background.IsStandard() && attr == AttrNone {
		return Reset()
	}
	return Reset() + Encode(text, background, attr)
}

// Enclose wraps text in the given style and a trailing reset.
func Enclose(text string, color, background Color, attr Attr) string {
	return Encode(color, background, attr) + text + Reset()
}

// Style is a text colour, background colour and attribute.
type Style struct {
	Text       Color
	Background Color
	Attr       Attr
}

// NewStyle returns a style with the given colours and no attribute.
func NewStyle(text, background Color) Style {
	return Style{Text: text, Background: background}
}

// IsZero reports whether nothing in the style is set.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Encode returns the escape sequence for the style.
func (s Style) Encode() string {
	return Encode(s.Text, s.Background, s.Attr)
}

// ResetTo returns a reset followed by this style.
func (s Style) ResetTo() string {
	return ResetTo(s.Text, s.Background, s.Attr)
}

// Enclose wraps text in the style.
func (s Style) Enclose(text string) string {
	return Enclose(text, s.Text, s.Background, s.Attr)
}

// WithDefaults fills unset colours from def.
func (s Style) WithDefaults(def Style) Style {
	if s.Text == 0 {
		s.Text = def.Text
	}
	if s.Background == 0 {
		s.Background = def.Background
	}
	if s.Attr == AttrNone {
		s.Attr = def.Attr
	}
	return s
}
