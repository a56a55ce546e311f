// Package textwidth measures how many terminal columns a string occupies once
// ANSI escape sequences are removed, and pads strings to a visible width.
package textwidth

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Direction says which side of a string receives padding.
type Direction int

const (
	// PadRight appends spaces, leaving text left-aligned.
	PadRight Direction = iota
	// PadLeft prepends spaces, leaving text right-aligned.
	PadLeft
	// PadBoth centres the text; an odd remainder goes to the right.
	PadBoth
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case PadLeft:
		return "left"
	case PadBoth:
		return "both"
	default:
		return "right"
	}
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\n\r", "\n", "\r", "\n")

// Strip removes every ANSI escape sequence from s.
func Strip(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return xansi.Strip(s)
}

// VisibleWidth returns the number of terminal columns s occupies. Escape
// sequences count as zero; East Asian wide glyphs count as two.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(Strip(s))
}

// SplitLines splits s on "\r\n", "\n\r", "\r" and "\n" alike.
func SplitLines(s string) []string {
	return strings.Split(lineBreaks.Replace(s), "\n")
}

// NormalizeNewlines rewrites every line-break convention to "\n".
func NormalizeNewlines(s string) string {
	return lineBreaks.Replace(s)
}

// MaxLineWidth returns the visible width of the widest line in s.
func MaxLineWidth(s string) int {
	widest := 0
	for _, line := range SplitLines(s) {
		widest = max(widest, VisibleWidth(line))
	}
	return widest
}

// Pad extends s with spaces until its visible width reaches width. Strings
// already at least that wide are returned unchanged.
func Pad(s string, width int, dir Direction) string {
	missing := width - VisibleWidth(s)
	if missing <= 0 {
		return s
	}

	switch dir {
	case PadLeft:
		return strings.Repeat(" ", missing) + s
	case PadBoth:
		left := missing / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", missing-left)
	default:
		return s + strings.Repeat(" ", missing)
	}
}

// Repeat fills width columns with glyph. A glyph wider than the remaining
// space is not emitted partially.
func Repeat(glyph string, width int) string {
	w := VisibleWidth(glyph)
	if w <= 0 || width <= 0 {
		return ""
	}
	return strings.Repeat(glyph, width/w)
}
