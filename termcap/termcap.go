// Package termcap detects what the attached terminal can display: ANSI
// colour sequences and Unicode glyphs.
package termcap

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Caps is the outcome of detection.
type Caps struct {
	ANSI    bool
	Unicode bool
	Profile termenv.Profile
}

// File is an output stream with a file descriptor, such as *os.File.
type File interface {
	io.Writer
	Fd() uintptr
}

// Probe holds the environment lookups detection depends on. The zero value
// is not usable; start from DefaultProbe.
type Probe struct {
	Getenv       func(string) string
	GOOS         string
	IsTerminal   func(fd uintptr) bool
	ColorProfile func(w io.Writer) termenv.Profile
}

// DefaultProbe inspects the real process environment.
func DefaultProbe() Probe {
	return Probe{
		Getenv: os.Getenv,
		GOOS:   runtime.GOOS,
		IsTerminal: func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		ColorProfile: func(w io.Writer) termenv.Profile {
			return termenv.NewOutput(w).EnvColorProfile()
		},
	}
}

// Detect runs DefaultProbe against f.
func Detect(f File) Caps {
	return DefaultProbe().Detect(f)
}

// Detect reports the capabilities of f.
func (p Probe) Detect(f File) Caps {
	profile := termenv.Ascii
	ansi := p.ANSI(f)
	if ansi {
		profile = p.ColorProfile(f)
	}
	return Caps{
		ANSI:    ansi && profile != termenv.Ascii,
		Unicode: p.Unicode(),
		Profile: profile,
	}
}

// ANSI reports whether escape sequences should be written to f. NO_COLOR
// and TERM=dumb turn them off; CLICOLOR_FORCE turns them on even when f is
// redirected.
func (p Probe) ANSI(f File) bool {
	if p.Getenv("NO_COLOR") != "" {
		return false
	}
	if p.Getenv("TERM") == "dumb" {
		return false
	}
	if v := p.Getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	return p.IsTerminal(f.Fd())
}

// Unicode reports whether the terminal can display glyphs outside ASCII,
// such as box drawing characters and check marks.
func (p Probe) Unicode() bool {
	if p.GOOS != "windows" {
		// Unix-like systems generally support Unicode
		return true
	}

	// Windows Terminal
	if p.Getenv("WT_SESSION") != "" {
		return true
	}
	if p.Getenv("TERM_PROGRAM") == "vscode" {
		return true
	}
	// ConEmu
	if p.Getenv("ConEmuPID") != "" {
		return true
	}
	// PowerShell
	if p.Getenv("PSModulePath") != "" || p.Getenv("POWERSHELL_DISTRIBUTION_CHANNEL") != "" {
		return true
	}
	if p.Getenv("TERM") != "" {
		return true
	}

	// old Windows console
	return false
}
