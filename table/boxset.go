package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound is returned for an unknown box set name.
var ErrNotFound = errors.New("box set not found")

// Box set names.
const (
	Simple = "simple"
	Single = "single"
	Double = "double"
)

// Edge holds the glyphs drawn where a horizontal rule meets the left border,
// a column boundary and the right border.
type Edge struct {
	Left, Cross, Right string
}

// BoxSet is the set of glyphs used to draw table borders.
type BoxSet struct {
	Name       string
	Top        Edge
	Middle     Edge
	Bottom     Edge
	Horizontal string
	Vertical   string
}

var boxSets = map[string]BoxSet{
	Simple: {
		Name:       Simple,
		Top:        Edge{"+", "+", "+"},
		Middle:     Edge{"+", "+", "+"},
		Bottom:     Edge{"+", "+", "+"},
		Horizontal: "-",
		Vertical:   "|",
	},
	Single: {
		Name:       Single,
		Top:        Edge{"┌", "┬", "┐"},
		Middle:     Edge{"├", "┼", "┤"},
		Bottom:     Edge{"└", "┴", "┘"},
		Horizontal: "─",
		Vertical:   "│",
	},
	Double: {
		Name:       Double,
		Top:        Edge{"╔", "╦", "╗"},
		Middle:     Edge{"╠", "╬", "╣"},
		Bottom:     Edge{"╚", "╩", "╝"},
		Horizontal: "═",
		Vertical:   "║",
	},
}

// Older names for the box drawing sets.
var boxSetAliases = map[string]string{
	"dossingle": Single,
	"dosdouble": Double,
	"ascii":     Simple,
}

// LookupBoxSet returns the named box set. Names are case-insensitive.
func LookupBoxSet(name string) (BoxSet, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := boxSetAliases[key]; ok {
		key = alias
	}
	set, ok := boxSets[key]
	if !ok {
		return BoxSet{}, fmt.Errorf("%w: %q (available: %s)", ErrNotFound, name, strings.Join(BoxSetNames(), ", "))
	}
	return set, nil
}

// BoxSetNames returns the preset names, sorted.
func BoxSetNames() []string {
	names := make([]string, 0, len(boxSets))
	for name := range boxSets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (b BoxSet) rule(e Edge, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat(b.Horizontal, w)
	}
	return e.Left + strings.Join(parts, e.Cross) + e.Right
}
