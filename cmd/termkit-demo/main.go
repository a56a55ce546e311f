// Command termkit-demo walks through the termkit output components: levels,
// tables, list views, progress meters and bars, task lists, spinners and
// prompts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/app"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/plugin"
	"github.com/jongio/termkit/progress"
	"github.com/jongio/termkit/table"
	"github.com/jongio/termkit/version"
)

// Set with -ldflags "-X main.buildVersion=...".
var (
	buildVersion = ""
	buildDate    = ""
	gitCommit    = ""
)

func main() {
	info := version.New("termkit-demo")
	if buildVersion != "" {
		info.Version = buildVersion
	}
	if buildDate != "" {
		info.BuildDate = buildDate
	}
	if gitCommit != "" {
		info.GitCommit = gitCommit
	}
	info.FromBuildInfo()

	interactive := false
	a := app.New(func(ctx context.Context, a *app.App) (int, error) {
		return run(ctx, a, interactive)
	}, app.Options{
		Name:    "termkit-demo",
		Short:   "Show what termkit can print",
		Version: info,
	})
	a.Command().Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask questions at the end of the tour")
	a.Command().AddCommand(newTableCommand(a))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := a.Execute(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, a *app.App, interactive bool) (int, error) {
	c := a.Console()
	c.Plugins().Use(plugin.Highlight())

	steps := []func(context.Context, *app.App) error{
		levels,
		tables,
		lists,
		meter,
		bars,
		tasks,
		sleep,
	}
	if interactive {
		steps = append(steps, questions)
	}
	for _, step := range steps {
		if err := step(ctx, a); err != nil {
			return 1, err
		}
		if err := c.Separator("", 0); err != nil {
			return 1, err
		}
	}
	return 0, nil
}

func levels(_ context.Context, a *app.App) error {
	c := a.Console()
	for _, l := range level.All() {
		if l == level.AlwaysPrint || l == level.Fatal {
			continue
		}
		if err := c.Log(l, fmt.Sprintf("A %s message", l)); err != nil {
			return err
		}
	}
	if err := c.Info("Continuation lines line up\nunder the first one\nwhatever the prefix"); err != nil {
		return err
	}
	if err := c.FatalSilent("A fatal message that does not end the run"); err != nil {
		return err
	}
	return c.Info("Markup such as {{this}} is highlighted by the output plugin")
}

func tables(_ context.Context, a *app.App) error {
	c := a.Console()
	t := c.Table(
		table.R("Service", "api", "Port", 8080, "Healthy", true, "Latency", 12.5),
		table.R("Service", "web", "Port", 3000, "Healthy", false, "Latency", 130.25),
		nil,
		table.R("Service", ansi.Enclose("db", ansi.LightCyan, ansi.Standard, ansi.AttrNone), "Port", 5432, "Healthy", true, "Latency", 1.75),
	).ColorValues(true).FormatNumbers(true)
	box := table.Simple
	if c.UTF8() {
		box = table.Double
	}
	if err := t.SetBoxSet(box); err != nil {
		return err
	}
	return t.Output(c, level.Info, ansi.Style{})
}

func lists(_ context.Context, a *app.App) error {
	c := a.Console()
	lv := c.ListView(map[string]any{
		"services": []string{"api", "web", "db"},
		"owner":    "platform",
		"limits":   map[string]int{"cpu": 2, "memory": 512},
	}).ShowKeys(true)
	return lv.Output(c, level.Info, ansi.Style{})
}

func meter(_ context.Context, a *app.App) error {
	m := progress.NewMeter(a.Console(), progress.MeterClock(true))
	if err := m.Start("Indexing"); err != nil {
		return err
	}
	for i := 1; i <= 4; i++ {
		if err := m.Set(float64(i*25), fmt.Sprintf("batch %d of 4", i)); err != nil {
			return err
		}
	}
	return m.End()
}

func bars(_ context.Context, a *app.App) error {
	outer := progress.NewBar(a.Console(), 3, progress.BarMessage("Regions"))
	for r := range 3 {
		inner := outer.Sub(5, progress.BarMessage(fmt.Sprintf("Region %d", r+1)))
		for range 5 {
			if err := inner.Advance(1); err != nil {
				return err
			}
		}
		if err := inner.Dispose(); err != nil {
			return err
		}
		if err := outer.Advance(1); err != nil {
			return err
		}
	}
	return outer.Dispose()
}

func tasks(_ context.Context, a *app.App) error {
	c := a.Console()
	ts := progress.NewTasks(c)
	build := ts.Add("build", "Build images")
	test := ts.Add("test", "Run tests")
	deploy := ts.Add("deploy", "Deploy")

	build.Start()
	build.SetProgress(60)
	if err := ts.Draw(); err != nil {
		return err
	}
	build.Complete()
	test.Start()
	if _, err := fmt.Fprint(test.Writer(10), "0123456789"); err != nil {
		return err
	}
	test.Complete()
	deploy.Fail(errors.New("no credentials"))
	if err := ts.Finish(); err != nil {
		return err
	}
	return ts.Summary(c)
}

func sleep(ctx context.Context, a *app.App) error {
	refreshed := 0
	a.Events().Add(func(context.Context) error {
		refreshed++
		return nil
	}, 500*time.Millisecond)

	if err := a.Sleep(ctx, 1500*time.Millisecond); err != nil {
		return err
	}
	return a.Console().Info(fmt.Sprintf("Events ran %d time(s) while waiting", refreshed))
}

func questions(_ context.Context, a *app.App) error {
	c := a.Console()
	p := a.Prompt()

	name, err := p.Ask("What should we call you?")
	if err != nil {
		return err
	}
	_, colour, err := p.Choose("Pick a colour", []string{"red", "green", "blue"})
	if err != nil {
		return err
	}
	picked, err := p.Toggle("Services to restart", []string{"api", "web", "db"}, []bool{true})
	if err != nil {
		return err
	}
	ok, err := p.ConfirmDefault("Print a summary?", true)
	if err != nil || !ok {
		return err
	}
	return c.Success(fmt.Sprintf("Hello {{%s}}, you picked %s and %d service(s)", name, colour, len(picked)))
}

// newTableCommand prints a table given as key=value rows:
//
//	termkit-demo table name=api,port=8080 name=web,port=3000
func newTableCommand(a *app.App) *cobra.Command {
	var (
		boxSet    string
		transpose bool
	)
	cmd := &cobra.Command{
		Use:   "table ROW...",
		Short: "Print key=value rows as a table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.Console()
			t := c.Table().Transpose(transpose).AutoAlign(true)
			if err := t.SetBoxSet(boxSet); err != nil {
				return err
			}
			for _, arg := range args {
				row, err := parseRow(arg)
				if err != nil {
					return err
				}
				t.AddRow(row)
			}
			return t.Output(c, level.AlwaysPrint, ansi.Style{})
		},
	}
	cmd.Flags().StringVar(&boxSet, "box", table.Simple, "Box glyph set: "+strings.Join(table.BoxSetNames(), ", "))
	cmd.Flags().BoolVar(&transpose, "transpose", false, "Swap rows and columns")
	return cmd
}

func parseRow(arg string) (table.Row, error) {
	var row table.Row
	for pair := range strings.SplitSeq(arg, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("row %q: %q is not key=value", arg, pair)
		}
		row = row.Set(key, value)
	}
	return row, nil
}
