package textwidth

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var sgrPattern = regexp.MustCompile(`\x1b\[([0-9;]*)m`)

// sgrState is the graphic rendition in effect after a run of SGR sequences.
type sgrState struct {
	attrs      map[int]bool
	foreground string
	background string
}

func (s *sgrState) reset() {
	clear(s.attrs)
	s.foreground = ""
	s.background = ""
}

// apply folds the parameters of one SGR sequence into the state.
func (s *sgrState) apply(params string) {
	if params == "" {
		s.reset()
		return
	}

	parts := strings.Split(params, ";")
	for i := 0; i < len(parts); i++ {
		code, err := strconv.Atoi(parts[i])
		if err != nil {
			continue
		}

		switch {
		case code == 0:
			s.reset()
		case code >= 1 && code <= 9:
			s.attrs[code] = true
		case code == 22:
			delete(s.attrs, 1)
			delete(s.attrs, 2)
		case code >= 23 && code <= 29:
			delete(s.attrs, code-20)
		case code == 38 || code == 48:
			// extended colour: 38;5;n or 38;2;r;g;b
			n := extendedLen(parts[i+1:])
			value := strings.Join(parts[i:i+1+n], ";")
			if code == 38 {
				s.foreground = value
			} else {
				s.background = value
			}
			i += n
		case code == 39:
			s.foreground = ""
		case code == 49:
			s.background = ""
		case (code >= 30 && code <= 37) || (code >= 90 && code <= 97):
			s.foreground = parts[i]
		case (code >= 40 && code <= 47) || (code >= 100 && code <= 107):
			s.background = parts[i]
		}
	}
}

// extendedLen returns how many parameters after a 38/48 belong to it.
func extendedLen(rest []string) int {
	if len(rest) == 0 {
		return 0
	}
	switch rest[0] {
	case "5":
		return min(2, len(rest))
	case "2":
		return min(4, len(rest))
	default:
		return 0
	}
}

func (s *sgrState) sequence() string {
	var params []string

	attrs := make([]int, 0, len(s.attrs))
	for a := range s.attrs {
		attrs = append(attrs, a)
	}
	slices.Sort(attrs)
	for _, a := range attrs {
		params = append(params, strconv.Itoa(a))
	}
	if s.foreground != "" {
		params = append(params, s.foreground)
	}
	if s.background != "" {
		params = append(params, s.background)
	}

	if len(params) == 0 {
		return "\x1b[0m"
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

// CalculatedSequence folds every SGR sequence in s into the single sequence
// that selects the same rendition. It returns "" when s contains no SGR
// sequence and the bare reset when the folded rendition is the default.
//
// Writing the result at the start of a continuation line restores the style
// that was active where the previous line was cut.
func CalculatedSequence(s string) string {
	matches := sgrPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return ""
	}

	state := sgrState{attrs: map[int]bool{}}
	for _, m := range matches {
		state.apply(m[1])
	}
	return state.sequence()
}
