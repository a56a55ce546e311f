// Package config holds the runtime environment of a termkit application:
// terminal size fallbacks, fatal handling, the debug level and output
// switches.
//
// An Environment starts from a named preset, is overlaid by an optional
// YAML file and then by environment variables, and is validated before any
// output is produced.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jongio/termkit/level"
)

// Preset names.
const (
	Production       = "production"
	Development      = "development"
	DevelopmentQuiet = "development-quiet"
)

// Environment variables read by ApplyEnv.
const (
	EnvDebugLevel   = "TERMKIT_DEBUG_LEVEL"
	EnvNoANSI       = "TERMKIT_NO_ANSI"
	EnvNoColor      = "NO_COLOR"
	EnvRows         = "TERMKIT_ROWS"
	EnvColumns      = "TERMKIT_COLUMNS"
	EnvTimeDecimals = "TERMKIT_TIME_DECIMALS"
)

// MaxTimeDecimals is the nanosecond resolution of timestamps.
const MaxTimeDecimals = 9

var (
	// ErrUnknownPreset is returned for preset names that do not exist.
	ErrUnknownPreset = errors.New("unknown environment preset")
	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("invalid environment")
)

// Environment is the runtime configuration.
type Environment struct {
	Name string `yaml:"name"`

	// SizeRows and SizeColumns are used when the terminal size is unknown.
	SizeRows    int `yaml:"sizeRows"`
	SizeColumns int `yaml:"sizeColumns"`
	// SizeUpdateInterval is how often the terminal size is probed again.
	SizeUpdateInterval time.Duration `yaml:"sizeUpdateInterval"`

	ExitOnFatal       bool        `yaml:"exitOnFatal"`
	DebugLevel        level.Level `yaml:"debugLevel"`
	InternalDebugging bool        `yaml:"internalDebugging"`

	TimeDecimals          int  `yaml:"timeDecimals"`
	DisableANSI           bool `yaml:"disableAnsi"`
	ShowPaddingBanners    bool `yaml:"showPaddingBanners"`
	DisableMessagePadding bool `yaml:"disableMessagePadding"`
	// UTF8 forces Unicode glyphs on or off. Nil means detect.
	UTF8 *bool `yaml:"utf8,omitempty"`
}

// presets returns fresh copies so callers can modify them.
func presets() map[string]Environment {
	prod := Environment{
		Name:               Production,
		SizeRows:           24,
		SizeColumns:        80,
		SizeUpdateInterval: 2 * time.Minute,
		ExitOnFatal:        true,
		DebugLevel:         level.Verbose,
		TimeDecimals:       4,
		ShowPaddingBanners: true,
	}

	dev := prod
	dev.Name = Development
	dev.ExitOnFatal = false
	dev.InternalDebugging = true

	quiet := dev
	quiet.Name = DevelopmentQuiet
	quiet.InternalDebugging = false

	return map[string]Environment{
		Production:       prod,
		Development:      dev,
		DevelopmentQuiet: quiet,
	}
}

// Default returns the production preset.
func Default() Environment {
	return presets()[Production]
}

// Preset returns the named preset. An empty name means production.
func Preset(name string) (Environment, error) {
	if name == "" {
		name = Production
	}
	env, ok := presets()[strings.ToLower(name)]
	if !ok {
		return Environment{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
	return env, nil
}

// PresetNames lists the presets in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, 3)
	for name := range presets() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load overlays the YAML file at path on base. Keys missing from the file
// keep their base value; unknown keys are an error. An empty path returns
// base unchanged.
func Load(path string, base Environment) (Environment, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config: %w", err)
	}
	env, err := Decode(data, base)
	if err != nil {
		return base, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return env, nil
}

// Decode overlays YAML data on base.
func Decode(data []byte, base Environment) (Environment, error) {
	env := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, err
	}
	return env, nil
}

// ApplyEnv overlays environment variables read through lookup, usually
// os.LookupEnv. NO_COLOR disables ANSI whatever its value.
func (e *Environment) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDebugLevel); ok && v != "" {
		l, err := level.Parse(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebugLevel, err)
		}
		e.DebugLevel = l
	}

	if v, ok := lookup(EnvNoANSI); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoANSI, err)
		}
		e.DisableANSI = b
	}
	if _, ok := lookup(EnvNoColor); ok {
		e.DisableANSI = true
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvRows, &e.SizeRows},
		{EnvColumns, &e.SizeColumns},
		{EnvTimeDecimals, &e.TimeDecimals},
	}
	for _, i := range ints {
		v, ok := lookup(i.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", i.key, err)
		}
		*i.dst = n
	}
	return nil
}

// Validate checks that every field is in range.
func (e Environment) Validate() error {
	var errs []error
	if e.SizeRows <= 0 {
		errs = append(errs, fmt.Errorf("sizeRows must be positive, got %d", e.SizeRows))
	}
	if e.SizeColumns <= 0 {
		errs = append(errs, fmt.Errorf("sizeColumns must be positive, got %d", e.SizeColumns))
	}
	if e.SizeUpdateInterval < 0 {
		errs = append(errs, fmt.Errorf("sizeUpdateInterval must not be negative, got %s", e.SizeUpdateInterval))
	}
	if !e.DebugLevel.Valid() {
		errs = append(errs, fmt.Errorf("debugLevel: %w: %d", level.ErrInvalid, int(e.DebugLevel)))
	}
	if e.TimeDecimals < 0 || e.TimeDecimals > MaxTimeDecimals {
		errs = append(errs, fmt.Errorf("timeDecimals must be between 0 and %d, got %d", MaxTimeDecimals, e.TimeDecimals))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
