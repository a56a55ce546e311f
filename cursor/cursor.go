// Package cursor builds the CSI sequences that move the cursor and clear
// parts of the screen. Every function returns the sequence; writing it is
// up to the caller.
package cursor

import (
	"fmt"
	"io"
	"strings"
)

const csi = "\x1b["

func seq(n int, letter byte) string {
	return fmt.Sprintf("%s%d%c", csi, max(n, 0), letter)
}

// Up moves the cursor up n rows.
func Up(n int) string { return seq(n, 'A') }

// Down moves the cursor down n rows.
func Down(n int) string { return seq(n, 'B') }

// Forward moves the cursor right n columns.
func Forward(n int) string { return seq(n, 'C') }

// Back moves the cursor left n columns.
func Back(n int) string { return seq(n, 'D') }

// NextLine moves to the start of the line n lines down.
func NextLine(n int) string { return seq(n, 'E') }

// PreviousLine moves to the start of the line n lines up.
func PreviousLine(n int) string { return seq(n, 'F') }

// Column moves to an absolute column, counted from 1.
func Column(col int) string { return seq(col, 'G') }

// Position moves to an absolute row and column, both counted from 1.
func Position(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", csi, max(row, 1), max(col, 1))
}

const (
	SavePosition                 = csi + "s"
	RestorePosition              = csi + "u"
	SavePositionAndAttributes    = "\x1b7"
	RestorePositionAndAttributes = "\x1b8"
	Hide                         = csi + "?25l"
	Show                         = csi + "?25h"
)

// ClearType says which part of a line or of the display to erase.
type ClearType int

const (
	// ToEnd erases from the cursor to the end.
	ToEnd ClearType = iota
	// ToBeginning erases from the cursor to the beginning.
	ToBeginning
	// Entire erases everything.
	Entire
)

// ClearLine erases part of the current line. The cursor does not move.
func ClearLine(t ClearType) string { return seq(int(t), 'K') }

// ClearDisplay erases part of the screen.
func ClearDisplay(t ClearType) string { return seq(int(t), 'J') }

// ClearLastLine moves to the start of the line above and erases it, so the
// next write replaces the previously printed line.
func ClearLastLine() string {
	return PreviousLine(1) + ClearLine(Entire)
}

// ClearLines erases n lines going upwards from the cursor.
func ClearLines(n int) string {
	return strings.Repeat(ClearLastLine(), max(n, 0))
}

// ScrollRegion limits scrolling to rows top through bottom. Zero for either
// bound means the screen edge; both zero resets the region.
func ScrollRegion(top, bottom int) string {
	switch {
	case top > 0 && bottom > 0:
		return fmt.Sprintf("%s%d;%dr", csi, top, bottom)
	case top > 0:
		return fmt.Sprintf("%s%dr", csi, top)
	case bottom > 0:
		return fmt.Sprintf("%s;%dr", csi, bottom)
	default:
		return csi + "r"
	}
}

// ScrollUp scrolls the page up n lines.
func ScrollUp(n int) string { return seq(n, 'S') }

// ScrollDown scrolls the page down n lines.
func ScrollDown(n int) string { return seq(n, 'T') }

// Write writes a sequence to w.
func Write(w io.Writer, sequence string) error {
	_, err := io.WriteString(w, sequence)
	return err
}
