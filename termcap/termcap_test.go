package termcap

import (
	"io"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

type fakeFile struct{ io.Writer }

func (fakeFile) Fd() uintptr { return 42 }

func probe(vars map[string]string, goos string, tty bool, profile termenv.Profile) Probe {
	return Probe{
		Getenv:       func(k string) string { return vars[k] },
		GOOS:         goos,
		IsTerminal:   func(uintptr) bool { return tty },
		ColorProfile: func(io.Writer) termenv.Profile { return profile },
	}
}

func TestProbe_ANSI(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]string
		tty      bool
		expected bool
	}{
		{"terminal", nil, true, true},
		{"redirected", nil, false, false},
		{"no color", map[string]string{"NO_COLOR": "1"}, true, false},
		{"dumb terminal", map[string]string{"TERM": "dumb"}, true, false},
		{"forced", map[string]string{"CLICOLOR_FORCE": "1"}, false, true},
		{"force disabled", map[string]string{"CLICOLOR_FORCE": "0"}, false, false},
		{"no color beats force", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := probe(tt.vars, "linux", tt.tty, termenv.ANSI256)
			assert.Equal(t, tt.expected, p.ANSI(fakeFile{io.Discard}))
		})
	}
}

func TestProbe_Unicode(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		vars     map[string]string
		expected bool
	}{
		{"linux", "linux", nil, true},
		{"darwin", "darwin", nil, true},
		{"windows terminal", "windows", map[string]string{"WT_SESSION": "abc"}, true},
		{"vscode", "windows", map[string]string{"TERM_PROGRAM": "vscode"}, true},
		{"conemu", "windows", map[string]string{"ConEmuPID": "12"}, true},
		{"powershell", "windows", map[string]string{"PSModulePath": `C:\ps`}, true},
		{"term set", "windows", map[string]string{"TERM": "xterm"}, true},
		{"legacy console", "windows", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, probe(tt.vars, tt.goos, true, termenv.ANSI).Unicode())
		})
	}
}

func TestProbe_Detect(t *testing.T) {
	caps := probe(nil, "linux", true, termenv.TrueColor).Detect(fakeFile{io.Discard})
	assert.Equal(t, Caps{ANSI: true, Unicode: true, Profile: termenv.TrueColor}, caps)

	ascii := probe(nil, "linux", true, termenv.Ascii).Detect(fakeFile{io.Discard})
	assert.False(t, ascii.ANSI)

	piped := probe(nil, "windows", false, termenv.TrueColor).Detect(fakeFile{io.Discard})
	assert.Equal(t, Caps{ANSI: false, Unicode: false, Profile: termenv.Ascii}, piped)
}
