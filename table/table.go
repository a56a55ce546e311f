// Package table renders rows of keyed values as a bordered text table.
//
// A table is built up with AddRow and the setters, then rendered with String
// or printed with Output. Rendering does not modify the table, so String can
// be called any number of times. Widths are measured on the visible text, so
// coloured and multi-line cells line up.
package table

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/logutil"
	"github.com/jongio/termkit/textwidth"
)

// Printer prints a rendered block of lines.
type Printer interface {
	PrintBlock(l level.Level, text string, style ansi.Style) error
}

// FormatFunc converts a cell value before it is turned into text.
type FormatFunc func(v any) any

// Table accumulates rows and rendering options.
type Table struct {
	rows           []Row
	headers        map[string]string
	headerCallback func(string) string
	padding        map[string]textwidth.Direction
	formats        map[string]FormatFunc
	box            BoxSet
	rowSeparator   bool
	charPadding    string
	hideHeaders    bool
	transpose      bool
	autoAlign      bool
	colorValues    bool
	formatNumbers  bool
	convertValues  bool
	log            *logutil.ComponentLogger
}

// New creates a table with the simple box set, one space of cell padding and
// numeric auto-alignment on.
func New(rows ...Row) *Table {
	t := &Table{
		headers:     map[string]string{},
		padding:     map[string]textwidth.Direction{},
		formats:     map[string]FormatFunc{},
		box:         boxSets[Simple],
		charPadding: " ",
		autoAlign:   true,
		log:         logutil.NewLogger("table"),
	}
	return t.AddRows(rows...)
}

// AddRow appends a row. A nil row is drawn as a separator line.
func (t *Table) AddRow(r Row) *Table {
	t.rows = append(t.rows, slices.Clone(r))
	return t
}

// AddRows appends rows in order.
func (t *Table) AddRows(rows ...Row) *Table {
	for _, r := range rows {
		t.AddRow(r)
	}
	return t
}

// AddSeparator appends a separator line.
func (t *Table) AddSeparator() *Table {
	return t.AddRow(nil)
}

// HasRows reports whether any row, separators included, was added.
func (t *Table) HasRows() bool {
	return len(t.rows) > 0
}

// SetHeaders sets header captions by column key. Columns without a caption
// use their key.
func (t *Table) SetHeaders(headers map[string]string) *Table {
	t.headers = maps.Clone(headers)
	if t.headers == nil {
		t.headers = map[string]string{}
	}
	return t
}

// SetHeaderCallback transforms every header caption, e.g. strings.ToUpper.
func (t *Table) SetHeaderCallback(fn func(string) string) *Table {
	t.headerCallback = fn
	return t
}

// HideHeaders drops the header row.
func (t *Table) HideHeaders(hide bool) *Table {
	t.hideHeaders = hide
	return t
}

// SetPadding sets the pad direction of a column, overriding auto-alignment.
func (t *Table) SetPadding(column string, dir textwidth.Direction) *Table {
	t.padding[column] = dir
	return t
}

// SetFormat formats every value in column with fmt.Sprintf(layout, value).
func (t *Table) SetFormat(column, layout string) *Table {
	return t.SetFormatFunc(column, func(v any) any {
		return fmt.Sprintf(layout, v)
	})
}

// SetFormatFunc converts every value in column with fn. Panics in fn reach
// the caller of String.
func (t *Table) SetFormatFunc(column string, fn FormatFunc) *Table {
	if fn == nil {
		delete(t.formats, column)
		return t
	}
	t.formats[column] = fn
	return t
}

// SetBoxSet selects the border glyphs by name. Unknown names leave the
// current set in place and return an error wrapping ErrNotFound.
func (t *Table) SetBoxSet(name string) error {
	set, err := LookupBoxSet(name)
	if err != nil {
		return err
	}
	t.box = set
	return nil
}

// BoxSet returns the selected border glyphs.
func (t *Table) BoxSet() BoxSet {
	return t.box
}

// UseRowSeparator draws a rule between every pair of rows instead of only
// under the header.
func (t *Table) UseRowSeparator(use bool) *Table {
	t.rowSeparator = use
	return t
}

// SetCharPadding sets the text put on both sides of every cell line.
func (t *Table) SetCharPadding(pad string) *Table {
	t.charPadding = pad
	return t
}

// Transpose renders columns as records: every column other than the first
// becomes a row, and the values of the first column become the headers.
func (t *Table) Transpose(on bool) *Table {
	t.transpose = on
	return t
}

// AutoAlign right-aligns columns whose non-empty values are all numeric.
func (t *Table) AutoAlign(on bool) *Table {
	t.autoAlign = on
	return t
}

// ColorValues colours cells by value type: booleans light green or light
// red, numbers light blue, strings light purple and NULL gray.
func (t *Table) ColorValues(on bool) *Table {
	t.colorValues = on
	return t
}

// FormatNumbers groups the integer digits of numeric cells with commas.
func (t *Table) FormatNumbers(on bool) *Table {
	t.formatNumbers = on
	return t
}

// ConvertValues prints nil cells as NULL instead of leaving them empty.
func (t *Table) ConvertValues(on bool) *Table {
	t.convertValues = on
	return t
}

// SetLogger replaces the diagnostics logger.
func (t *Table) SetLogger(l *logutil.ComponentLogger) *Table {
	t.log = l
	return t
}

// Columns returns the column keys in the order they will be drawn.
func (t *Table) Columns() []string {
	return columnsOf(t.records())
}

// Output prints the rendered table through p.
func (t *Table) Output(p Printer, l level.Level, style ansi.Style) error {
	return p.PrintBlock(l, t.String(), style)
}

// String renders the table. Lines are joined with "\n" and there is no
// trailing newline. A table without columns renders as "".
func (t *Table) String() string {
	rows := t.records()
	columns := columnsOf(rows)
	if len(columns) == 0 {
		return ""
	}
	dirs := t.directions(columns, rows)

	cells := make([][]string, 0, len(rows)+1)
	if !t.hideHeaders {
		cells = append(cells, t.headerRow(columns))
	}
	for _, row := range rows {
		if row == nil {
			cells = append(cells, nil)
			continue
		}
		line := make([]string, len(columns))
		for j, col := range columns {
			v, ok := row.Get(col)
			if !ok {
				continue
			}
			if f := t.formats[col]; f != nil {
				v = f(v)
			}
			line[j] = t.text(v)
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(columns))
	split := make([][][]string, len(cells))
	for i, row := range cells {
		if row == nil {
			continue
		}
		split[i] = make([][]string, len(columns))
		for j, cell := range row {
			lines := carryForward(textwidth.SplitLines(cell))
			for k := range lines {
				lines[k] = t.charPadding + lines[k] + t.charPadding
				widths[j] = max(widths[j], textwidth.VisibleWidth(lines[k]))
			}
			split[i][j] = lines
		}
	}

	middle := t.box.rule(t.box.Middle, widths)
	out := []string{t.box.rule(t.box.Top, widths)}
	ruled := true
	for i, row := range split {
		if row == nil {
			if !ruled {
				out = append(out, middle)
				ruled = true
			}
			continue
		}
		if t.rowSeparator && !ruled {
			out = append(out, middle)
		}
		out = append(out, t.renderRow(row, widths, dirs)...)
		ruled = false

		if i == 0 && !t.hideHeaders && !t.rowSeparator {
			out = append(out, middle)
			ruled = true
		}
	}
	out = append(out, t.box.rule(t.box.Bottom, widths))

	return strings.Join(out, "\n")
}

func (t *Table) renderRow(row [][]string, widths []int, dirs []textwidth.Direction) []string {
	height := 0
	for _, lines := range row {
		height = max(height, len(lines))
	}

	out := make([]string, height)
	parts := make([]string, len(row))
	for k := range height {
		for j, lines := range row {
			var line string
			if k < len(lines) {
				line = lines[k]
			}
			parts[j] = textwidth.Pad(line, widths[j], dirs[j])
		}
		out[k] = t.box.Vertical + strings.Join(parts, t.box.Vertical) + t.box.Vertical
	}
	return out
}

func (t *Table) headerRow(columns []string) []string {
	header := make([]string, len(columns))
	for j, col := range columns {
		caption := col
		if custom, ok := t.headers[col]; ok {
			caption = custom
		}
		if t.headerCallback != nil {
			caption = t.headerCallback(caption)
		}
		header[j] = caption
	}
	return header
}

// records returns the rows to draw, transposed when requested.
func (t *Table) records() []Row {
	if !t.transpose {
		return t.rows
	}

	var data []Row
	for _, r := range t.rows {
		if r != nil {
			data = append(data, r)
		}
	}
	columns := columnsOf(data)
	if len(columns) == 0 {
		return nil
	}

	key := columns[0]
	out := make([]Row, 0, len(columns)-1)
	for _, col := range columns[1:] {
		r := Row{{Key: key, Value: col}}
		for _, row := range data {
			v, ok := row.Get(col)
			if !ok {
				continue
			}
			head, _ := row.Get(key)
			r = r.Set(keyString(head), v)
		}
		out = append(out, r)
	}
	return out
}

func (t *Table) directions(columns []string, rows []Row) []textwidth.Direction {
	dirs := make([]textwidth.Direction, len(columns))
	for j, col := range columns {
		if d, ok := t.padding[col]; ok {
			dirs[j] = d
			continue
		}
		dirs[j] = textwidth.PadRight
		if !t.autoAlign {
			continue
		}

		numeric, other := 0, 0
		for _, row := range rows {
			v, ok := row.Get(col)
			if !ok || isEmpty(v) {
				continue
			}
			if isNumeric(v) {
				numeric++
			} else {
				other++
			}
		}
		switch {
		case numeric > 0 && other == 0:
			dirs[j] = textwidth.PadLeft
		case numeric > 0:
			t.log.Debug("mixed column left-aligned", "column", col, "numeric", numeric, "other", other)
		}
	}
	return dirs
}

// text turns a formatted cell value into the string that is printed.
func (t *Table) text(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		if t.convertValues {
			s = "NULL"
		}
	case string:
		s = val
	case bool:
		s = strconv.FormatBool(val)
	case fmt.Stringer:
		s = val.String()
	default:
		if n, ok := numberText(v); ok {
			s = n
			if t.formatNumbers {
				s = groupDigits(s)
			}
		} else {
			s = fmt.Sprint(v)
		}
	}

	if t.colorValues && s != "" {
		s = colorize(v, s)
	}
	return s
}

func colorize(v any, s string) string {
	c := ansi.LightPurple
	switch val := v.(type) {
	case nil:
		c = ansi.Gray
	case bool:
		c = ansi.LightGreen
		if !val {
			c = ansi.LightRed
		}
	default:
		if _, ok := numberText(v); ok {
			c = ansi.LightBlue
		}
	}
	return ansi.Enclose(s, c, ansi.Standard, ansi.AttrNone)
}

// carryForward re-opens the style active at the end of each line at the start
// of the next one, and closes every styled line with a reset so padding and
// borders are drawn unstyled.
func carryForward(lines []string) []string {
	carried := ""
	for k, line := range lines {
		line = carried + line
		carried = ""
		if seq := textwidth.CalculatedSequence(line); seq != "" && seq != ansi.Reset() {
			line += ansi.Reset()
			carried = seq
		}
		lines[k] = line
	}
	return lines
}

func columnsOf(rows []Row) []string {
	var columns []string
	seen := map[string]bool{}
	for _, row := range rows {
		for _, c := range row {
			if !seen[c.Key] {
				seen[c.Key] = true
				columns = append(columns, c.Key)
			}
		}
	}
	return columns
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	}
	return false
}

func isNumeric(v any) bool {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	_, ok := numberText(v)
	return ok
}

func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return floatText(float64(n), 32), true
	case float64:
		return floatText(n, 64), true
	}
	return "", false
}

func floatText(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprint(f)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// groupDigits inserts thousands separators into the integer part of a
// decimal number.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if len(whole) <= 3 || strings.ContainsFunc(whole, func(r rune) bool { return r < '0' || r > '9' }) {
		return sign + s
	}

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}
