package plugin

import (
	"regexp"
	"strings"

	"github.com/jongio/termkit/ansi"
)

// HighlightPattern is the markup recognised by Highlight.
const HighlightPattern = "{{%s}}"

const colorExpr = `((?:light)?(?:black|red|green|yellow|brown|blue|purple|magenta|cyan|gray|grey|white))`

var highlightColors = regexp.MustCompile(`(?i)^(.+?):` + colorExpr + `(?::` + colorExpr + `)?$`)

// line colour -> highlight text and background that stand out on it
var lineHighlights = map[ansi.Color]ansi.Style{
	ansi.Black:       ansi.NewStyle(ansi.White, ansi.Black),
	ansi.White:       ansi.NewStyle(ansi.Gray, ansi.White),
	ansi.Red:         ansi.NewStyle(ansi.White, ansi.Red),
	ansi.Green:       ansi.NewStyle(ansi.White, ansi.Green),
	ansi.Yellow:      ansi.NewStyle(ansi.Black, ansi.Yellow),
	ansi.Blue:        ansi.NewStyle(ansi.White, ansi.Blue),
	ansi.Purple:      ansi.NewStyle(ansi.White, ansi.Purple),
	ansi.Cyan:        ansi.NewStyle(ansi.White, ansi.Cyan),
	ansi.Gray:        ansi.NewStyle(ansi.White, ansi.Gray),
	ansi.LightRed:    ansi.NewStyle(ansi.White, ansi.LightRed),
	ansi.LightGreen:  ansi.NewStyle(ansi.White, ansi.LightGreen),
	ansi.LightYellow: ansi.NewStyle(ansi.Gray, ansi.LightYellow),
	ansi.LightBlue:   ansi.NewStyle(ansi.Gray, ansi.LightBlue),
	ansi.LightPurple: ansi.NewStyle(ansi.White, ansi.LightPurple),
	ansi.LightCyan:   ansi.NewStyle(ansi.White, ansi.LightCyan),
	ansi.LightGray:   ansi.NewStyle(ansi.White, ansi.LightGray),
}

// Highlight returns the plugin that turns "{{text}}" into highlighted text,
// gray on white. "{{text:red}}" picks the text colour and "{{text:red:blue}}"
// the background too; colour names ignore case.
func Highlight() *Plugin {
	return HighlightOn(ansi.Standard)
}

// HighlightOn is Highlight with a default highlight chosen to stand out on
// lines printed in the given text colour.
func HighlightOn(line ansi.Color) *Plugin {
	def := ansi.NewStyle(ansi.Gray, ansi.White)
	if s, ok := lineHighlights[line]; ok {
		def = s
	}

	p, err := New(HighlightPattern, func(match string) string {
		return highlight(match, def)
	})
	if err != nil {
		panic(err) // constant pattern
	}
	return p
}

func highlight(match string, def ansi.Style) string {
	style := def
	if m := highlightColors.FindStringSubmatch(match); m != nil {
		match = m[1]
		style = ansi.NewStyle(ansi.Standard, ansi.Standard)
		if c, ok := ansi.ParseColor(m[2]); ok {
			style.Text = c
		}
		if m[3] != "" {
			if c, ok := ansi.ParseColor(strings.ToLower(m[3])); ok {
				style.Background = c
			}
		}
	}
	return style.Enclose(match)
}
