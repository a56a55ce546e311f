// Package listview renders nested sequences and mappings as an indented
// bullet list.
package listview

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/textwidth"
)

var (
	// ErrCycle is returned when the data contains itself.
	ErrCycle = errors.New("list contains a cycle")
	// ErrNotFound is returned for an unknown typeset name.
	ErrNotFound = errors.New("typeset not found")
)

// Typeset names.
const (
	Default = "default"
	Single  = "single"
	Double  = "double"
)

// Typeset is the set of glyphs a list is drawn with.
type Typeset struct {
	Name       string
	Item       string
	End        string
	Vertical   string
	Horizontal string
}

var typesets = map[string]Typeset{
	Default: {Name: Default, Item: "*", End: "*"},
	Single:  {Name: Single, Item: "├", End: "└", Vertical: "│", Horizontal: "─"},
	Double:  {Name: Double, Item: "╠", End: "╚", Vertical: "║", Horizontal: "═"},
}

// LookupTypeset returns the named typeset.
func LookupTypeset(name string) (Typeset, error) {
	ts, ok := typesets[strings.ToLower(name)]
	if !ok {
		return Typeset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return ts, nil
}

// Entry is one key and value of a Map.
type Entry struct {
	Key   string
	Value any
}

// Map is a mapping that keeps its insertion order. Plain Go maps are drawn
// in sorted key order instead.
type Map []Entry

// Printer prints a rendered block of lines.
type Printer interface {
	PrintBlock(l level.Level, text string, style ansi.Style) error
}

// ListView holds the data to draw and the typeset to draw it with.
type ListView struct {
	data     any
	typeset  string
	showKeys bool
}

// New creates a list view drawn with the single-line typeset.
func New(data any) *ListView {
	return &ListView{data: data, typeset: Single}
}

// SetData replaces the data.
func (lv *ListView) SetData(data any) *ListView {
	lv.data = data
	return lv
}

// SetTypeset selects the typeset used by Output.
func (lv *ListView) SetTypeset(name string) error {
	ts, err := LookupTypeset(name)
	if err != nil {
		return err
	}
	lv.typeset = ts.Name
	return nil
}

// ShowKeys prints mapping keys in front of their values.
func (lv *ListView) ShowKeys(show bool) *ListView {
	lv.showKeys = show
	return lv
}

// Output renders with the selected typeset and prints through p.
func (lv *ListView) Output(p Printer, l level.Level, style ansi.Style) error {
	text, err := lv.Render(lv.typeset)
	if err != nil {
		return err
	}
	return p.PrintBlock(l, text, style)
}

// Render draws the data with the named typeset. Lines are joined with "\n"
// without a trailing newline. The last item of every sequence or mapping
// uses the end glyph.
func (lv *ListView) Render(typeset string) (string, error) {
	ts, err := LookupTypeset(typeset)
	if err != nil {
		return "", err
	}

	r := renderer{ts: ts, showKeys: lv.showKeys, visiting: map[visit]bool{}}
	if err := r.node(reflect.ValueOf(lv.data), ""); err != nil {
		return "", err
	}
	return strings.Join(r.lines, "\n"), nil
}

type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type renderer struct {
	ts       Typeset
	showKeys bool
	visiting map[visit]bool
	lines    []string
}

type child struct {
	key   string
	value reflect.Value
}

func (r *renderer) node(v reflect.Value, prefix string) error {
	v = indirect(v)
	if !v.IsValid() {
		return nil
	}

	children, ok := r.children(v)
	if !ok {
		r.leaf(prefix+r.ts.End, "", v)
		return nil
	}

	if mark, tracked := r.mark(v); tracked {
		if r.visiting[mark] {
			return fmt.Errorf("%w: %s", ErrCycle, v.Type())
		}
		r.visiting[mark] = true
		defer delete(r.visiting, mark)
	}

	sub := prefix + r.ts.Horizontal + " "
	for i, c := range children {
		value := indirect(c.value)
		if _, nested := r.children(value); nested {
			if r.showKeys && c.key != "" {
				r.lines = append(r.lines, prefix+r.ts.Item+" "+c.key)
			}
			if err := r.node(value, sub); err != nil {
				return err
			}
			continue
		}

		glyph := r.ts.Item
		if i == len(children)-1 {
			glyph = r.ts.End
		}
		r.leaf(prefix+glyph, c.key, value)
	}
	return nil
}

// leaf adds one item. Continuation lines of a multi-line value are indented
// under the first line's text.
func (r *renderer) leaf(bullet, key string, v reflect.Value) {
	text := scalar(v)
	if r.showKeys && key != "" {
		text = key + ": " + text
	}

	head := bullet + " "
	indent := strings.Repeat(" ", textwidth.VisibleWidth(head))
	for i, line := range textwidth.SplitLines(text) {
		if i == 0 {
			r.lines = append(r.lines, head+line)
			continue
		}
		r.lines = append(r.lines, indent+line)
	}
}

// children lists the elements of a sequence or mapping. Scalars report false.
func (r *renderer) children(v reflect.Value) ([]child, bool) {
	if !v.IsValid() {
		return nil, false
	}
	if m, ok := v.Interface().(Map); ok {
		out := make([]child, len(m))
		for i, e := range m {
			out[i] = child{key: e.Key, value: reflect.ValueOf(e.Value)}
		}
		return out, true
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		out := make([]child, v.Len())
		for i := range v.Len() {
			out[i] = child{value: v.Index(i)}
		}
		return out, true
	case reflect.Map:
		out := make([]child, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out = append(out, child{key: fmt.Sprint(iter.Key().Interface()), value: iter.Value()})
		}
		slices.SortFunc(out, func(a, b child) int { return strings.Compare(a.key, b.key) })
		return out, true
	}
	return nil, false
}

func (r *renderer) mark(v reflect.Value) (visit, bool) {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		if v.IsNil() {
			return visit{}, false
		}
		return visit{ptr: v.Pointer(), typ: v.Type(), len: v.Len()}, true
	}
	return visit{}, false
}

// indirect unwraps interfaces and pointers.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		if v.Kind() == reflect.Pointer {
			if _, ok := v.Interface().(fmt.Stringer); ok {
				return v
			}
		}
		v = v.Elem()
	}
	return v
}

func scalar(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	if b, ok := v.Interface().([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v.Interface())
}
