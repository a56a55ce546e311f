package ansi

import (
	"fmt"
	"strings"
)

// ColorValue renders a scalar in the colour used for its type: booleans as
// TRUE/FALSE in light green/red, numbers light blue, strings light purple.
// Other values are formatted with %v and left uncoloured.
func ColorValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return Enclose("TRUE", LightGreen, Standard, AttrNone)
		}
		return Enclose("FALSE", LightRed, Standard, AttrNone)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Enclose(fmt.Sprint(val), LightBlue, Standard, AttrNone)
	case string:
		return Enclose(val, LightPurple, Standard, AttrNone)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

var readableOn = []struct {
	text        Color
	backgrounds []Color
}{
	{Black, []Color{Yellow, Cyan, Gray, LightGreen, LightYellow, LightBlue, LightPurple, LightCyan, White}},
	{White, []Color{Black, Red, Green, Blue, Purple, Gray}},
}

// VisibleTextColor picks a text colour that stays readable on the given
// background, or Standard if any colour will do.
func VisibleTextColor(background Color) Color {
	for _, r := range readableOn {
		for _, bg := range r.backgrounds {
			if bg == background {
				return r.text
			}
		}
	}
	return Standard
}

var colorNames = map[string]Color{
	"r": Red,
	"g": Green,
	"b": Blue,

	"standard": Standard,
	"black":    Black,
	"red":      Red,
	"green":    Green,
	"yellow":   Yellow,
	"brown":    Brown,
	"blue":     Blue,
	"purple":   Purple,
	"magenta":  Magenta,
	"cyan":     Cyan,
	"gray":     Gray,
	"grey":     Gray,
	"white":    White,

	// there is no light black or light white
	"lightblack":   Black,
	"lightred":     LightRed,
	"lightgreen":   LightGreen,
	"lightyellow":  LightYellow,
	"lightbrown":   LightBrown,
	"lightblue":    LightBlue,
	"lightpurple":  LightPurple,
	"lightmagenta": LightMagenta,
	"lightcyan":    LightCyan,
	"lightgray":    LightGray,
	"lightgrey":    LightGray,
	"lightwhite":   White,
}

// ParseColor looks up a colour by name, ignoring case, spaces, dashes and
// underscores ("light-red", "Light Red" and "LIGHT_RED" are the same).
func ParseColor(name string) (Color, bool) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
	c, ok := colorNames[key]
	return c, ok
}
