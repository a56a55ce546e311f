// Package app is the shell around a termkit program. It owns everything
// that happens once per process: parsing flags, building the environment,
// creating the console, drawing the START and END banners, and turning the
// result of the run into an exit code.
//
// Fatal messages end the run with exit code 0. The console only reports
// them as *console.FatalError; App is the one place that exits.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/config"
	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/events"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/logutil"
	"github.com/jongio/termkit/metrics"
	"github.com/jongio/termkit/prompt"
	"github.com/jongio/termkit/table"
	"github.com/jongio/termkit/termcap"
	"github.com/jongio/termkit/termsize"
	"github.com/jongio/termkit/version"
)

// MaxReturnCode is the largest exit code a run may return.
const MaxReturnCode = 254

// Flag names.
const (
	FlagDebugLevel            = "debug-level"
	FlagRows                  = "cli-rows"
	FlagColumns               = "cli-columns"
	FlagDisablePaddingBanners = "disable-padding-banners"
	FlagNoANSI                = "no-ansi"
	FlagEnvironment           = "environment"
	FlagConfig                = "config"
	FlagLogFormat             = "log-format"
	FlagMetrics               = "metrics"
)

// ErrReturnCode is reported when a run returns a code outside 0 to
// MaxReturnCode.
var ErrReturnCode = errors.New("return code out of range")

// RunFunc is the body of a program. The returned code becomes the process
// exit code. A *console.FatalError ends the run with code 0; any other
// error is printed and ends it with code 1.
type RunFunc func(ctx context.Context, a *App) (int, error)

// Options configure an App. Zero fields use the real process.
type Options struct {
	// Name is shown in the END banner. It defaults to the executable name.
	Name  string
	Short string
	Long  string
	// Version adds a version subcommand.
	Version *version.Info

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Exit ends the process. It defaults to os.Exit.
	Exit func(code int)

	Clock  func() time.Time
	Lookup func(key string) (string, bool)
	// SizeProbe asks the terminal for its size.
	SizeProbe termsize.ProbeFunc
	// Detect reports what the output stream can display.
	Detect func(w io.Writer) termcap.Caps
	// Wait backs console sleeps.
	Wait func(ctx context.Context, d time.Duration) error
}

type flags struct {
	debugLevel     level.Level
	rows           int
	columns        int
	disableBanners bool
	noANSI         bool
	environment    string
	configPath     string
	logFormat      string
	metrics        bool
}

// App runs one program. Create it with New.
type App struct {
	opts Options
	run  RunFunc
	root *cobra.Command
	f    flags

	env      config.Environment
	out      *bufio.Writer
	console  *console.Console
	size     *termsize.Tracker
	events   *events.Registry
	registry *prometheus.Registry
	prompter *prompt.Prompter
	log      *logutil.ComponentLogger

	started time.Time
	code    int
}

// New creates an app running run as its root command.
func New(run RunFunc, opts Options) *App {
	if opts.Name == "" {
		opts.Name = filepath.Base(os.Args[0])
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}
	if opts.Detect == nil {
		opts.Detect = detect
	}

	a := &App{
		opts: opts,
		run:  run,
		log:  logutil.NewLogger("app"),
	}
	a.root = a.newRootCommand()
	return a
}

func detect(w io.Writer) termcap.Caps {
	if f, ok := w.(termcap.File); ok {
		return termcap.Detect(f)
	}
	return termcap.Caps{Unicode: termcap.DefaultProbe().Unicode()}
}

func (a *App) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           a.opts.Name,
		Short:         a.opts.Short,
		Long:          a.opts.Long,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.code = a.runMain(cmd.Context())
			return nil
		},
	}

	a.addFlags(cmd.PersistentFlags())

	if a.opts.Version != nil {
		cmd.AddCommand(version.NewCommand(a.opts.Version, a.Console, nil))
	}
	return cmd
}

// addFlags registers the persistent flags shared by every subcommand.
func (a *App) addFlags(fs *pflag.FlagSet) {
	a.f.debugLevel = level.Verbose
	fs.Var(&a.f.debugLevel, FlagDebugLevel, "Highest level printed, by name or 0-7")
	fs.IntVar(&a.f.rows, FlagRows, 0, "Pin the terminal height")
	fs.IntVar(&a.f.columns, FlagColumns, 0, "Pin the terminal width")
	fs.BoolVar(&a.f.disableBanners, FlagDisablePaddingBanners, false, "Do not draw the START and END banners")
	fs.BoolVar(&a.f.noANSI, FlagNoANSI, false, "Print without colours or cursor movement")
	fs.StringVar(&a.f.environment, FlagEnvironment, config.Production, "Environment preset: production, development or development-quiet")
	fs.StringVar(&a.f.configPath, FlagConfig, "", "YAML file overlaid on the environment preset")
	fs.StringVar(&a.f.logFormat, FlagLogFormat, string(logutil.FormatText), "Diagnostics log format: text or json")
	fs.BoolVar(&a.f.metrics, FlagMetrics, false, "Print output counters when the run ends")
}

// Command returns the root command, for adding subcommands. Subcommands
// can use Console once they run.
func (a *App) Command() *cobra.Command {
	return a.root
}

// Main runs the program with the process arguments and exits.
func (a *App) Main() {
	a.opts.Exit(a.Execute(context.Background(), os.Args[1:]))
}

// Execute runs the program with args and returns the exit code. Errors in
// flags or configuration are written to Stderr before any other output.
func (a *App) Execute(ctx context.Context, args []string) int {
	a.code = 0
	a.root.SetArgs(args)
	a.root.SetOut(a.opts.Stdout)
	a.root.SetErr(a.opts.Stderr)

	err := a.root.ExecuteContext(ctx)
	if a.out != nil {
		if ferr := a.out.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("flush output: %w", ferr)
		}
	}
	if err != nil {
		fmt.Fprintf(a.opts.Stderr, "Error: %v\n", err)
		return 1
	}
	return a.code
}

// Environment returns the environment the run uses.
func (a *App) Environment() config.Environment {
	return a.env
}

// Console returns the console. It is nil until the command runs.
func (a *App) Console() *console.Console {
	return a.console
}

// Size returns the terminal size tracker.
func (a *App) Size() *termsize.Tracker {
	return a.size
}

// Events returns the interval callback registry polled by Poll.
func (a *App) Events() *events.Registry {
	return a.events
}

// Metrics returns the registry holding the output counters.
func (a *App) Metrics() *prometheus.Registry {
	return a.registry
}

// Prompt returns a prompter asking on the console and reading Stdin.
func (a *App) Prompt() *prompt.Prompter {
	if a.prompter == nil {
		a.prompter = prompt.New(a.console, a.opts.Stdin)
	}
	return a.prompter
}

// environment builds the environment from the preset, the config file,
// environment variables and the flags set on the command line, in that
// order.
func (a *App) environment() (config.Environment, error) {
	env, err := config.Preset(a.f.environment)
	if err != nil {
		return env, err
	}
	if env, err = config.Load(a.f.configPath, env); err != nil {
		return env, err
	}
	if err := env.ApplyEnv(a.opts.Lookup); err != nil {
		return env, fmt.Errorf("environment variables: %w", err)
	}

	if a.changed(FlagDebugLevel) {
		env.DebugLevel = a.f.debugLevel
	}
	if a.f.disableBanners {
		env.ShowPaddingBanners = false
	}
	if a.f.noANSI {
		env.DisableANSI = true
	}
	return env, env.Validate()
}

func (a *App) changed(name string) bool {
	f := a.root.PersistentFlags().Lookup(name)
	return f != nil && f.Changed
}

// setup runs before any command and prints nothing.
func (a *App) setup() error {
	format, err := logutil.ParseFormat(a.f.logFormat)
	if err != nil {
		return fmt.Errorf("--%s: %w", FlagLogFormat, err)
	}
	if a.f.rows < 0 || a.f.columns < 0 {
		return fmt.Errorf("--%s and --%s must not be negative", FlagRows, FlagColumns)
	}
	env, err := a.environment()
	if err != nil {
		return err
	}
	a.env = env

	logutil.SetupLoggerWithWriter(a.opts.Stderr, env.InternalDebugging, format)
	a.root.PersistentFlags().Visit(func(f *pflag.Flag) {
		a.log.Debug("flag set", "name", f.Name, "value", f.Value.String())
	})

	a.size = termsize.New(termsize.Options{
		FallbackRows:    env.SizeRows,
		FallbackColumns: env.SizeColumns,
		Interval:        env.SizeUpdateInterval,
		Lookup:          a.opts.Lookup,
		Probe:           a.opts.SizeProbe,
	})
	a.size.SetStatic(a.f.rows, a.f.columns)

	caps := a.opts.Detect(a.opts.Stdout)
	utf8 := caps.Unicode
	if env.UTF8 != nil {
		utf8 = *env.UTF8
	}

	a.registry = prometheus.NewRegistry()
	a.events = events.New(a.opts.Clock)
	a.out = bufio.NewWriter(a.opts.Stdout)

	var consoleLog *logutil.ComponentLogger
	if env.InternalDebugging {
		consoleLog = logutil.NewLogger("console")
	}
	a.console = console.New(a.out, console.Options{
		DebugLevel:            env.DebugLevel,
		TextColor:             ansi.Standard,
		Background:            ansi.Standard,
		TimeDecimals:          env.TimeDecimals,
		DisableANSI:           env.DisableANSI || !caps.ANSI,
		UTF8:                  utf8,
		ShowPaddingBanners:    env.ShowPaddingBanners,
		DisableMessagePadding: env.DisableMessagePadding,
		ExitOnFatal:           env.ExitOnFatal,
		Sizer:                 a.size,
		Clock:                 a.opts.Clock,
		Observer:              metrics.New(a.registry),
		Logger:                consoleLog,
		Wait:                  a.opts.Wait,
	})

	a.log.Debug("environment ready",
		"environment", env.Name,
		"debugLevel", env.DebugLevel.String(),
		"ansi", !env.DisableANSI && caps.ANSI,
		"utf8", utf8)
	return nil
}

// runMain draws the banners around the run and works out the exit code.
func (a *App) runMain(ctx context.Context) int {
	c := a.console
	a.started = a.opts.Clock()

	if c.ShowPaddingBanners() {
		a.report(c.NewLine())
		a.report(c.FullLineMessage("START", console.BannerColor(ansi.LightCyan, ansi.Standard), console.BannerFrame(false)))
	}

	code, err := a.run(ctx, a)
	switch {
	case console.IsFatal(err):
		a.log.Info("run ended by a fatal message", "error", err)
		code = 0
	case err != nil:
		a.report(c.Error(fmt.Sprintf("The run failed: %v", err)))
		code = 1
	case code < 0 || code > MaxReturnCode:
		a.report(c.Error(fmt.Errorf("%w: %d is not between 0 and %d", ErrReturnCode, code, MaxReturnCode)))
		code = 1
	}

	if c.ShowPaddingBanners() {
		a.report(a.endBanner())
	}
	if a.f.metrics {
		a.report(a.printMetrics())
	}
	return code
}

// report logs errors from output written after the run ended; there is
// nowhere else to send them.
func (a *App) report(err error) {
	if err != nil {
		a.log.Warn("failed to write output", "error", err)
	}
}

var bracketed = regexp.MustCompile(`\[([^\]]+)\]`)

// endBanner prints
//
//	-------------[END]--------------
//	Script demo ended at 2024-05-01 12:00:00
//
//	It took 0 hours, 0 minutes, 1.5000 seconds
//
// with the values highlighted.
func (a *App) endBanner() error {
	c := a.console
	if err := c.FullLineMessage("END", console.BannerColor(ansi.LightCyan, ansi.Standard), console.BannerFrame(false)); err != nil {
		return err
	}

	end := a.opts.Clock()
	message := fmt.Sprintf("Script [%s] ended at [%s]\n\nIt took [%s]\n",
		a.opts.Name, end.Format(time.DateTime), Took(end.Sub(a.started), c.TimeDecimals()))
	highlight := ansi.Enclose("$1", ansi.LightGreen, ansi.Standard, ansi.AttrNone)
	message = bracketed.ReplaceAllString(message, highlight)

	return c.PrintBlock(level.AlwaysPrint, message, ansi.NewStyle(ansi.LightCyan, ansi.Standard))
}

// Took formats d as "1 hour, 2 minutes, 3.5000 seconds" with decimals
// fractional digits.
func Took(d time.Duration, decimals int) string {
	d = max(d, 0)
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := d.Seconds()

	return fmt.Sprintf("%d %s, %d %s, %.*f %s",
		hours, plural(hours == 1, "hour"),
		minutes, plural(minutes == 1, "minute"),
		decimals, seconds, plural(seconds == 1, "second"))
}

func plural(one bool, word string) string {
	if one {
		return word
	}
	return word + "s"
}

func (a *App) printMetrics() error {
	samples, err := metrics.Summary(a.registry)
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	if len(samples) == 0 {
		return nil
	}

	t := a.console.Table()
	for _, s := range samples {
		t.AddRow(table.R("Metric", s.Name, "Labels", s.Labels, "Value", s.Value))
	}
	return t.Output(a.console, level.AlwaysPrint, ansi.Style{})
}

// Poll runs the events that are due. Failed events are reported as
// warnings; a fatal result is returned so the run can stop.
func (a *App) Poll(ctx context.Context) error {
	for _, err := range a.events.RunDue(ctx) {
		if werr := a.console.Warning(err); werr != nil {
			return werr
		}
	}
	return ctx.Err()
}

// Sleep waits for d with the default spinner, then polls the events.
func (a *App) Sleep(ctx context.Context, d time.Duration) error {
	if err := a.console.Sleep(ctx, d, "", 0); err != nil {
		return err
	}
	return a.Poll(ctx)
}
