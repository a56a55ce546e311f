package console

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/plugin"
	"github.com/jongio/termkit/table"
	"github.com/jongio/termkit/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2024, 5, 1, 12, 0, 0, 500_000_000, time.UTC)

const stamp = "12:00:00,5000 "

func newConsole(t *testing.T, configure func(*Options)) (*Console, *testutil.Buffer) {
	t.Helper()
	buf := &testutil.Buffer{}
	opts := DefaultOptions()
	opts.Clock = testutil.FixedClock(noon)
	opts.DisableANSI = true
	if configure != nil {
		configure(&opts)
	}
	return New(buf, opts), buf
}

type observer struct {
	emitted map[level.Level]int
	dropped map[level.Level]int
	fatal   int
}

func newObserver() *observer {
	return &observer{emitted: map[level.Level]int{}, dropped: map[level.Level]int{}}
}

func (o *observer) Emitted(l level.Level, _ int) { o.emitted[l]++ }
func (o *observer) Dropped(l level.Level)        { o.dropped[l]++ }
func (o *observer) FatalRequested()              { o.fatal++ }

func TestPrintText_SeverityFilter(t *testing.T) {
	for _, threshold := range level.All() {
		for _, l := range level.All() {
			c, buf := newConsole(t, func(o *Options) {
				o.DebugLevel = threshold
				o.ExitOnFatal = false
			})

			require.NoError(t, c.PrintText(Message{Level: l, Content: "x"}))
			if l <= threshold {
				assert.NotEmpty(t, buf.String(), "level %s at threshold %s", l, threshold)
			} else {
				assert.Empty(t, buf.String(), "level %s at threshold %s", l, threshold)
			}
		}
	}
}

func TestLog_FilteredHasNoSideEffects(t *testing.T) {
	obs := newObserver()
	c, buf := newConsole(t, func(o *Options) {
		o.DebugLevel = level.AlwaysPrint
		o.Observer = obs
	})
	c.ScheduleNewline()

	require.NoError(t, c.Info("hidden"))
	require.NoError(t, c.Fatal("hidden"))
	require.NoError(t, c.PrintLine(Message{Level: level.Debug, Content: "hidden"}))

	assert.Empty(t, buf.String())
	assert.True(t, c.NewlineScheduled())
	assert.Equal(t, 1, obs.dropped[level.Info])
	assert.Equal(t, 1, obs.dropped[level.Fatal])
	assert.Zero(t, obs.fatal)

	require.NoError(t, c.WriteLine("shown"))
	assert.Equal(t, "\n"+stamp+"shown\n", buf.String())
}

func TestLog_PadAlignment(t *testing.T) {
	c, buf := newConsole(t, nil)

	require.NoError(t, c.Error("one\ntwo\r\nthree"))

	pad := strings.Repeat(" ", 21)
	assert.Equal(t, stamp+"ERROR: one\n"+pad+"two\n"+pad+"three\n", buf.String())
}

func TestLog_PadWidth(t *testing.T) {
	tests := []struct {
		name     string
		decimals int
		opts     []Option
		pad      int
	}{
		{"no decimals", 0, nil, 9 + 4 + 2},
		{"two decimals", 2, nil, 12 + 4 + 2},
		{"no prefix", 4, []Option{WithPrefix("")}, 14},
		{"long prefix", 4, []Option{WithPrefix("DOWNLOAD")}, 14 + 8 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newConsole(t, func(o *Options) { o.TimeDecimals = tt.decimals })

			require.NoError(t, c.Info("a\nb", tt.opts...))
			lines := strings.Split(buf.String(), "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, strings.Repeat(" ", tt.pad)+"b", lines[1])
		})
	}
}

func TestLog_PaddingDisabled(t *testing.T) {
	c, buf := newConsole(t, nil)

	require.NoError(t, c.Info("a\nb", WithoutPadding()))
	assert.False(t, c.DisableMessagePadding(true))
	require.NoError(t, c.Info("c\nd"))
	assert.True(t, c.DisableMessagePadding(false))

	assert.Equal(t, stamp+"INFO: a\nb\n"+stamp+"INFO: c\nd\n", buf.String())
}

func TestInfo_ANSI(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.DisableANSI = false })

	require.NoError(t, c.Info("hi"))
	assert.Equal(t, "\x1b[37m"+stamp+"\x1b[1;32mINFO: hi\x1b[0m\n", buf.String())
}

func TestPrintText_NestedResetContinuesStyle(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.DisableANSI = false })

	inner := ansi.Enclose("b", ansi.Red, ansi.Standard, ansi.AttrNone)
	require.NoError(t, c.Warning("a "+inner+" c", WithPrefix("")))

	assert.True(t, strings.HasSuffix(buf.String(), "\x1b[33ma \x1b[31mb\x1b[0m\x1b[33m c\x1b[0m\n"), buf.String())
}

func TestPrintText_Values(t *testing.T) {
	tests := []struct {
		name     string
		content  any
		expected string
	}{
		{"true", true, "TRUE"},
		{"false", false, "FALSE"},
		{"nil", nil, "(NULL)"},
		{"int", -2, "-2"},
		{"float", 3.5, "3.5"},
		{"error", errors.New("broken"), "broken"},
		{"builder", ansi.NewBuilder(ansi.Style{}).Write("built"), "built"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newConsole(t, nil)
			require.NoError(t, c.PrintText(Message{Content: tt.content, Timestamp: TimestampOff}))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestPrintText_StructuredDump(t *testing.T) {
	c, buf := newConsole(t, nil)

	require.NoError(t, c.Debug(map[string]any{"name": "api", "port": 8080}))

	out := buf.String()
	assert.Contains(t, out, "DEBUG: {")
	assert.Contains(t, out, `"name"`)
	assert.Contains(t, out, `"api"`)
	assert.Contains(t, out, "8080")
	assert.NotContains(t, out, "\x1b[")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, strings.Repeat(" ", 21)), line)
	}
}

func TestStringify_Unencodable(t *testing.T) {
	assert.NotEmpty(t, Stringify(make(chan int)))
	assert.Equal(t, Structured{V: struct{}{}}, ValueOf(struct{}{}))
	assert.Equal(t, Number("12"), ValueOf(uint8(12)))
}

func TestOutputPlugins(t *testing.T) {
	c, buf := newConsole(t, nil)

	require.NoError(t, c.AddOutputPlugin("<%s>", strings.ToUpper))
	assert.Error(t, c.AddOutputPlugin("no placeholder", strings.ToUpper))
	assert.Equal(t, 1, c.Plugins().Len())

	require.NoError(t, c.WriteLine("say <hi>"))
	assert.Equal(t, stamp+"say HI\n", buf.String())
}

func TestOutputPlugins_Highlight(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.DisableANSI = false })
	c.Plugins().Use(plugin.Highlight())

	require.NoError(t, c.Info("see {{this}} now"))
	assert.Contains(t, buf.String(), "\x1b[1;30;47mthis\x1b[0m\x1b[1;32m now")
}

func TestFatal_RequestsExit(t *testing.T) {
	obs := newObserver()
	c, buf := newConsole(t, func(o *Options) { o.Observer = obs })

	err := c.Fatal("boom")
	require.Error(t, err)
	assert.True(t, IsFatal(err))

	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "boom", fe.Message)
	assert.Equal(t, "fatal: boom", err.Error())

	assert.Equal(t, stamp+"FATAL: boom\n", buf.String())
	assert.False(t, buf.Unflushed(), "fatal output must be flushed")
	assert.False(t, c.ExitOnFatal())
	assert.Equal(t, 1, obs.fatal)

	require.NoError(t, c.Fatal("again"), "exit is requested once")
}

func TestFatalSilent_RestoresFlag(t *testing.T) {
	for _, exit := range []bool{true, false} {
		c, buf := newConsole(t, func(o *Options) { o.ExitOnFatal = exit })

		require.NoError(t, c.FatalSilent("quiet"))
		assert.Equal(t, stamp+"FATAL: quiet\n", buf.String())
		assert.Equal(t, exit, c.ExitOnFatal())
	}
}

func TestFatal_WrappedIsFatal(t *testing.T) {
	err := errors.Join(errors.New("other"), &FatalError{Message: "x"})
	assert.True(t, IsFatal(err))
	assert.False(t, IsFatal(errors.New("plain")))
	assert.False(t, IsFatal(nil))
}

func TestPrintLine_FlushesEveryLine(t *testing.T) {
	c, buf := newConsole(t, nil)

	require.NoError(t, c.Write("partial"))
	assert.True(t, buf.Unflushed())

	require.NoError(t, c.Info("line"))
	assert.False(t, buf.Unflushed())
	assert.Equal(t, 1, buf.Flushes())
}

func TestPrintLine_TimestampFollowsLineStart(t *testing.T) {
	c, buf := newConsole(t, nil)

	require.NoError(t, c.Write("a"))
	require.NoError(t, c.Info("b"))
	require.NoError(t, c.Info("c"))

	assert.Equal(t, "aINFO: b\n"+stamp+"INFO: c\n", buf.String())
}

func TestScheduledNewline(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.UTF8 = true })

	p := c.Progress("Computing..")
	require.NoError(t, p.Err())
	assert.True(t, c.NewlineScheduled())

	require.NoError(t, p.Success(""))
	require.NoError(t, c.Info("next"))

	assert.Equal(t, stamp+"INFO: Computing.. ✔\n"+stamp+"INFO: next\n", buf.String())
	assert.False(t, c.NewlineScheduled())
}

func TestProgressMessage_Suffixes(t *testing.T) {
	tests := []struct {
		name     string
		utf8     bool
		finish   func(*ProgressMessage) error
		expected string
	}{
		{"success ascii", false, func(p *ProgressMessage) error { return p.Success("") }, " Success"},
		{"error utf8", true, func(p *ProgressMessage) error { return p.Error("disk full") }, " ✖ disk full"},
		{"error ascii", false, func(p *ProgressMessage) error { return p.Error("disk full") }, " Error disk full"},
		{"message", true, func(p *ProgressMessage) error { return p.Message("3 files") }, " 3 files"},
		{"empty message", true, func(p *ProgressMessage) error { return p.Message("") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, buf := newConsole(t, func(o *Options) { o.UTF8 = tt.utf8 })

			p := c.ProgressAt(level.Warning, "Work")
			require.NoError(t, tt.finish(p))
			assert.Equal(t, stamp+"WARNING: Work"+tt.expected, buf.String())
		})
	}
}

func TestProgressMessage_Filtered(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.DebugLevel = level.Error })

	p := c.Progress("hidden")
	require.NoError(t, p.Success("done"))
	assert.Empty(t, buf.String())
	assert.False(t, c.NewlineScheduled())
}

func TestPrintBlock_Table(t *testing.T) {
	c, buf := newConsole(t, nil)
	c.ScheduleNewline()

	tbl := c.Table(table.R("a", 1))
	require.NoError(t, tbl.Output(c, level.AlwaysPrint, ansi.Style{}))

	assert.Equal(t, "\n"+tbl.String()+"\n", buf.String())
}

func TestPrintBlock_ListView(t *testing.T) {
	c, buf := newConsole(t, nil)

	require.NoError(t, c.ListView([]string{"a", "b"}).Output(c, level.Info, ansi.Style{}))
	assert.Equal(t, "├ a\n└ b\n", buf.String())
}

func TestSeparator(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.Sizer = fixedWidth(10) })

	require.NoError(t, c.Separator("=-", 0))
	require.NoError(t, c.Separator("", ansi.Blue))
	assert.Equal(t, "=-=-=-=-=-\n----------\n", buf.String())
}

func TestSeparator_Colour(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) {
		o.Sizer = fixedWidth(3)
		o.DisableANSI = false
	})

	require.NoError(t, c.Separator("", 0))
	assert.Equal(t, "\x1b[1;31m---\x1b[0m\n", buf.String())
}

func TestFullLineMessage(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.Sizer = fixedWidth(20) })

	require.NoError(t, c.FullLineMessage("START"))
	require.NoError(t, c.FullLineMessage("END", BannerFrame(false), BannerBrackets(false), BannerGlyph("*")))

	assert.Equal(t, strings.Join([]string{
		"--------------------",
		"------[START]-------",
		"--------------------",
		"********END*********",
		"",
	}, "\n"), buf.String())
}

func TestFullLineMessage_Level(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.DebugLevel = level.Info })

	require.NoError(t, c.FullLineMessage("hidden", BannerLevel(level.Debug)))
	assert.Empty(t, buf.String())
}

func TestClearLastLine(t *testing.T) {
	c, buf := newConsole(t, func(o *Options) { o.DisableANSI = false })
	require.NoError(t, c.ClearLastLine())
	assert.Equal(t, "\x1b[1F\x1b[2K", buf.String())

	c, buf = newConsole(t, nil)
	require.NoError(t, c.ClearLastLine())
	assert.Empty(t, buf.String())
}

func TestSetters(t *testing.T) {
	c, _ := newConsole(t, nil)

	require.NoError(t, c.SetDebugLevel(level.Warning))
	assert.Equal(t, level.Warning, c.DebugLevel())
	assert.ErrorIs(t, c.SetDebugLevel(level.Level(12)), level.ErrInvalid)
	assert.Equal(t, level.Warning, c.DebugLevel())

	c.SetShowPaddingBanners(false)
	assert.False(t, c.ShowPaddingBanners())
	c.SetExitOnFatal(false)
	assert.False(t, c.ExitOnFatal())
	c.SetDisableANSI(false)
	assert.False(t, c.ANSIDisabled())
	c.SetUTF8(true)
	assert.True(t, c.UTF8())

	assert.Equal(t, 14, c.TimestampWidth())
	assert.Equal(t, 80, c.Columns())
}

func TestNew_ClampsOptions(t *testing.T) {
	c := New(&testutil.Buffer{}, Options{TimeDecimals: 20, DebugLevel: level.Level(-3)})
	assert.Equal(t, 9, c.TimeDecimals())
	assert.Equal(t, level.Verbose, c.DebugLevel())

	c = New(&testutil.Buffer{}, Options{TimeDecimals: -1})
	assert.Equal(t, 9, c.TimestampWidth())
}

func TestObserver_CountsEmitted(t *testing.T) {
	obs := newObserver()
	c, _ := newConsole(t, func(o *Options) {
		o.Observer = obs
		o.DebugLevel = level.Info
	})

	require.NoError(t, c.Info("a"))
	require.NoError(t, c.Warning("b"))
	require.NoError(t, c.Verbose("c"))

	assert.Equal(t, 1, obs.emitted[level.Info])
	assert.Equal(t, 1, obs.emitted[level.Warning])
	assert.Equal(t, 1, obs.dropped[level.Verbose])
}
