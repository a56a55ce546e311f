package console

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
)

// Value is printable message content. The implementations are Text,
// Number, Boolean, Null and Structured; ValueOf picks one for any Go value.
type Value interface {
	render() string
}

// Text is printed as is.
type Text string

// Number is a number in its decimal form.
type Number string

// Boolean prints as TRUE or FALSE.
type Boolean bool

// Null prints as (NULL).
type Null struct{}

// Structured is any other value. It prints as indented, coloured JSON, or
// with %+v when it cannot be encoded as JSON.
type Structured struct {
	V any
}

func (t Text) render() string   { return string(t) }
func (n Number) render() string { return string(n) }
func (Null) render() string     { return "(NULL)" }

func (b Boolean) render() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func (s Structured) render() string {
	raw, err := json.Marshal(s.V)
	if err != nil {
		return fmt.Sprintf("%+v", s.V)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Sprintf("%+v", s.V)
	}
	out, err := dumpFormatter().Marshal(generic)
	if err != nil {
		return fmt.Sprintf("%+v", s.V)
	}
	return string(out)
}

// dumpFormatter colours unconditionally; the console strips escapes itself
// when ANSI is off.
func dumpFormatter() *colorjson.Formatter {
	f := colorjson.NewFormatter()
	f.Indent = 2
	f.KeyColor = forced(color.FgHiMagenta)
	f.StringColor = forced(color.FgYellow)
	f.BoolColor = forced(color.FgHiBlue)
	f.NumberColor = forced(color.FgHiCyan)
	f.NullColor = forced(color.FgHiBlack)
	return f
}

func forced(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

// ValueOf wraps v in the Value that prints it.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case Value:
		return val
	case nil:
		return Null{}
	case string:
		return Text(val)
	case []byte:
		return Text(val)
	case bool:
		return Boolean(val)
	case json.Number:
		return Number(val)
	case int:
		return Number(strconv.FormatInt(int64(val), 10))
	case int8:
		return Number(strconv.FormatInt(int64(val), 10))
	case int16:
		return Number(strconv.FormatInt(int64(val), 10))
	case int32:
		return Number(strconv.FormatInt(int64(val), 10))
	case int64:
		return Number(strconv.FormatInt(val, 10))
	case uint:
		return Number(strconv.FormatUint(uint64(val), 10))
	case uint8:
		return Number(strconv.FormatUint(uint64(val), 10))
	case uint16:
		return Number(strconv.FormatUint(uint64(val), 10))
	case uint32:
		return Number(strconv.FormatUint(uint64(val), 10))
	case uint64:
		return Number(strconv.FormatUint(val, 10))
	case float32:
		return Number(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case float64:
		return Number(strconv.FormatFloat(val, 'f', -1, 64))
	case error:
		return Text(val.Error())
	case fmt.Stringer:
		return Text(val.String())
	default:
		return Structured{V: v}
	}
}

// Stringify renders v the way the console prints it.
func Stringify(v any) string {
	return ValueOf(v).render()
}
