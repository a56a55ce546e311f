// Package spinner holds the named frame sets used to animate waits.
package spinner

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Default is the spinner used when none is named.
const Default = "simple"

// ErrNotFound is returned for unknown spinner names.
var ErrNotFound = errors.New("spinner not found")

// each rune is one frame
var sets = map[string]string{
	"simple":                `|/-\`,
	"morse":                 "⠂-–—–-",
	"pie":                   "◐◓◑◒",
	"clock":                 "◴◷◶◵",
	"square":                "◰◳◲◱",
	"dancing-squares":       "▖▘▝▗",
	"pulsating-square":      "■□▪▫",
	"tetris":                "▌▀▐▄",
	"full-square":           "▉▊▋▌▍▎▏▎▍▌▋▊▉",
	"rising-square":         "▁▃▄▅▆▇█▇▆▅▄▃",
	"arrow":                 "←↖↑↗→↘↓↙",
	"line":                  "┤┘┴└├┌┬┐",
	"triangle":              "◢◣◤◥",
	"pulsating-o":           ".oO°°Oo.",
	"exploding-o":           ".oO@*",
	"world":                 "🌍🌎🌏",
	"smiley":                "◡◡ ⊙⊙ ◠◠",
	"fall":                  "☱☲☴",
	"digital-around":        "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏",
	"digital-up-down":       "⠋⠙⠚⠞⠖⠦⠴⠲⠳⠓",
	"digital-left-right":    "⠄⠆⠇⠋⠙⠸⠰⠠⠰⠸⠙⠋⠇⠆",
	"digital-random-1":      "⠋⠙⠚⠒⠂⠂⠒⠲⠴⠦⠖⠒⠐⠐⠒⠓⠋",
	"digital-random-2":      "⠁⠉⠙⠚⠒⠂⠂⠒⠲⠴⠤⠄⠄⠤⠴⠲⠒⠂⠂⠒⠚⠙⠉⠁",
	"digital-random-3":      "⠈⠉⠋⠓⠒⠐⠐⠒⠖⠦⠤⠠⠠⠤⠦⠖⠒⠐⠐⠒⠓⠋⠉⠈",
	"digital-random-4":      "⠁⠁⠉⠙⠚⠒⠂⠂⠒⠲⠴⠤⠄⠄⠤⠠⠠⠤⠦⠖⠒⠐⠐⠒⠓⠋⠉⠈⠈",
	"digital-dancing-dot":   "⢄⢂⢁⡁⡈⡐⡠",
	"digital-dancing-walls": "⢹⢺⢼⣸⣇⡧⡗⡏",
	"digital-dancing-hole":  "⣾⣽⣻⢿⡿⣟⣯⣷",
	"pulsating-dot":         "⠁⠂⠄⡀⢀⠠⠐⠈",
	"moon":                  "🌑🌒🌓🌔🌕🌝🌖🌗🌘🌚",
}

// Spinner cycles through a fixed list of frames.
type Spinner struct {
	name   string
	frames []string
	next   int
}

// Get returns a spinner positioned at its first frame. Unknown names give
// an error wrapping ErrNotFound.
func Get(name string) (*Spinner, error) {
	if name == "" {
		name = Default
	}
	set, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrNotFound, name, strings.Join(Names(), ", "))
	}

	frames := make([]string, 0, len(set))
	for _, r := range set {
		frames = append(frames, string(r))
	}
	return &Spinner{name: name, frames: frames}, nil
}

// Names lists the available spinners in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Name returns the spinner's name.
func (s *Spinner) Name() string {
	return s.name
}

// Frames returns a copy of every frame.
func (s *Spinner) Frames() []string {
	return slices.Clone(s.frames)
}

// Next returns the current frame and advances, wrapping after the last one.
func (s *Spinner) Next() string {
	frame := s.frames[s.next]
	s.next = (s.next + 1) % len(s.frames)
	return frame
}

// Reset goes back to the first frame.
func (s *Spinner) Reset() {
	s.next = 0
}
