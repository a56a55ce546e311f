package table

import (
	"fmt"
	"slices"
)

// Cell is one value in a row, keyed by column.
type Cell struct {
	Key   string
	Value any
}

// Row is an ordered list of cells. A nil Row renders as a separator line.
type Row []Cell

// R builds a row from alternating keys and values:
//
//	table.R("name", "api", "port", 8080)
//
// Keys that are not strings are formatted with %v. A trailing key without a
// value gets a nil value.
func R(pairs ...any) Row {
	row := make(Row, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		var v any
		if i+1 < len(pairs) {
			v = pairs[i+1]
		}
		row = row.Set(keyString(pairs[i]), v)
	}
	return row
}

// FromMap builds a row from m with keys in sorted order.
func FromMap(m map[string]any) Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	row := make(Row, 0, len(keys))
	for _, k := range keys {
		row = append(row, Cell{Key: k, Value: m[k]})
	}
	return row
}

// Get returns the value stored under key.
func (r Row) Get(key string) (any, bool) {
	for _, c := range r {
		if c.Key == key {
			return c.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key, or appends it.
func (r Row) Set(key string, v any) Row {
	for i := range r {
		if r[i].Key == key {
			r[i].Value = v
			return r
		}
	}
	if r == nil {
		r = Row{}
	}
	return append(r, Cell{Key: key, Value: v})
}

// Keys returns the column keys in order.
func (r Row) Keys() []string {
	keys := make([]string, len(r))
	for i, c := range r {
		keys[i] = c.Key
	}
	return keys
}

// IsSeparator reports whether the row is a separator marker.
func (r Row) IsSeparator() bool {
	return r == nil
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
