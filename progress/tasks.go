package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/spinner"
	"github.com/jongio/termkit/textwidth"
)

// Status is the state of a task.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Task list layout.
const (
	minColumnsForBar = 70 // narrower terminals get the compact line
	iconWidth        = 2  // icon + space
	percentWidth     = 5  // "100% "
	timeWidth        = 6  // "999.9s"
	layoutPadding    = 3
	maxDescWidth     = 20
	descColumn       = 25
	minBarWidth      = 15
	maxBarWidth      = 30
)

// Running progress stops short of 100% until the task completes.
const progressCapRunning = 95.0

type glyphs struct {
	pending, success, failed, skipped string
	spinner                           string
	done, head, todo                  string
	failDone, failTodo                string
}

var (
	unicodeGlyphs = glyphs{
		pending: "○", success: "✓", failed: "✗", skipped: "-",
		spinner: "digital-around",
		done:    "━", head: "▶", todo: "─",
		failDone: "╍", failTodo: "╌",
	}
	asciiGlyphs = glyphs{
		pending: "o", success: "+", failed: "x", skipped: "-",
		spinner: spinner.Default,
		done:    "=", head: ">", todo: "-",
		failDone: "#", failTodo: ".",
	}
)

// Task is one line in a task list. Its methods may be called from other
// goroutines; drawing is done by Tasks.Draw.
type Task struct {
	mu          sync.Mutex
	now         func() time.Time
	description string
	status      Status
	progress    float64
	written     int64
	expected    int64
	started     time.Time
	ended       time.Time
	errMsg      string
}

// Start marks the task as running.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusRunning
	t.started = t.now()
}

// SetProgress records percent done. Until Complete the value is capped
// below 100 and never goes backwards.
func (t *Task) SetProgress(percent float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.raise(percent)
}

func (t *Task) raise(percent float64) {
	percent = min(progressCapRunning, max(0, percent))
	if percent > t.progress {
		t.progress = percent
	}
}

// Complete marks the task as done at 100%.
func (t *Task) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = 100
	t.ended = t.now()
	t.status = StatusSuccess
}

// Fail marks the task as failed. The error, if any, is shown under it.
func (t *Task) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.errMsg = err.Error()
	}
	t.ended = t.now()
	t.status = StatusFailed
}

// Skip marks the task as skipped.
func (t *Task) Skip() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress = 0
	t.ended = t.now()
	t.status = StatusSkipped
}

// Status returns the task state.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Progress returns percent done.
func (t *Task) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Writer returns a writer that discards what it is given and advances the
// task by the share of expected bytes written, such as a child process's
// output.
func (t *Task) Writer(expected int64) io.Writer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expected = expected
	return taskWriter{t}
}

type taskWriter struct{ t *Task }

func (w taskWriter) Write(p []byte) (int, error) {
	w.t.mu.Lock()
	defer w.t.mu.Unlock()
	w.t.written += int64(len(p))
	if w.t.expected > 0 {
		w.t.raise(float64(w.t.written) / float64(w.t.expected) * 100)
	}
	return len(p), nil
}

func (t *Task) elapsed(now time.Time) time.Duration {
	switch t.status {
	case StatusPending:
		return 0
	case StatusSuccess, StatusFailed, StatusSkipped:
		if t.started.IsZero() {
			return 0
		}
		return t.ended.Sub(t.started)
	default:
		return now.Sub(t.started)
	}
}

func (t *Task) unfinished() bool {
	return t.status == StatusPending || t.status == StatusRunning
}

// TasksOption configures Tasks.
type TasksOption func(*Tasks)

// TasksLevel sets the level the task lines print at. The default is
// level.AlwaysPrint.
func TasksLevel(l level.Level) TasksOption {
	return func(ts *Tasks) { ts.level = l }
}

// TasksClock replaces time.Now.
func TasksClock(now func() time.Time) TasksOption {
	return func(ts *Tasks) { ts.now = now }
}

// Tasks is a list of tasks, each drawn as a status line with a bar:
//
//	✓ Build api                 [━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━] 100% 2.4s
//	⠹ Build web                 [━━━━━━━━▶─────────────────────]  30% 1.1s
//	○ Deploy
type Tasks struct {
	screen Screen
	level  level.Level
	now    func() time.Time
	spin   *spinner.Spinner
	glyphs glyphs

	tasks []*Task
	byID  map[string]*Task
	drawn int
}

// NewTasks returns an empty task list drawing on s.
func NewTasks(s Screen, opts ...TasksOption) *Tasks {
	ts := &Tasks{
		screen: s,
		level:  level.AlwaysPrint,
		now:    time.Now,
		byID:   make(map[string]*Task),
		glyphs: asciiGlyphs,
	}
	for _, opt := range opts {
		opt(ts)
	}
	if s.UTF8() {
		ts.glyphs = unicodeGlyphs
	}
	sp, err := spinner.Get(ts.glyphs.spinner)
	if err != nil {
		panic(err) // built-in name
	}
	ts.spin = sp
	return ts
}

// Add appends a pending task. Adding an existing id returns that task.
func (ts *Tasks) Add(id, description string) *Task {
	if t, ok := ts.byID[id]; ok {
		return t
	}
	t := &Task{now: ts.now, description: description, status: StatusPending}
	ts.byID[id] = t
	ts.tasks = append(ts.tasks, t)
	return t
}

// Get returns the task with the given id, or nil.
func (ts *Tasks) Get(id string) *Task {
	return ts.byID[id]
}

// Len returns the number of tasks.
func (ts *Tasks) Len() int {
	return len(ts.tasks)
}

// Draw replaces the previously drawn task lines with the current state.
func (ts *Tasks) Draw() error {
	if !ts.level.Enabled(ts.screen.DebugLevel()) {
		return nil
	}
	for range ts.drawn {
		if err := ts.screen.ClearLastLine(); err != nil {
			return err
		}
	}
	ts.drawn = 0

	frame := ts.spin.Next()
	now := ts.now()
	for _, t := range ts.tasks {
		for _, line := range ts.lines(t, frame, now) {
			err := ts.screen.PrintLine(console.Message{
				Level:     ts.level,
				Content:   console.Text(line),
				Timestamp: console.TimestampOff,
			})
			if err != nil {
				return err
			}
			ts.drawn++
		}
	}
	return nil
}

// Finish marks every unfinished task as done and draws the final state.
// Later draws print below it.
func (ts *Tasks) Finish() error {
	for _, t := range ts.tasks {
		t.mu.Lock()
		if t.unfinished() {
			t.progress = 100
			t.ended = ts.now()
			t.status = StatusSuccess
		}
		t.mu.Unlock()
	}
	err := ts.Draw()
	ts.drawn = 0
	return err
}

// Summary prints how many tasks succeeded, or which failed.
func (ts *Tasks) Summary(log console.Logger) error {
	var failed []string
	for _, t := range ts.tasks {
		t.mu.Lock()
		if t.status == StatusFailed {
			failed = append(failed, t.description)
		}
		t.mu.Unlock()
	}

	if len(failed) == 0 {
		return log.Success(fmt.Sprintf("Completed %d task(s)", len(ts.tasks)))
	}
	msg := fmt.Sprintf("Failed %d of %d task(s)", len(failed), len(ts.tasks))
	for _, desc := range failed {
		msg += "\n  " + ts.glyphs.failed + " " + desc
	}
	return log.Error(msg)
}

func (ts *Tasks) lines(t *Task, frame string, now time.Time) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := []string{ts.statusLine(t, frame, now)}
	if t.status == StatusFailed && t.errMsg != "" {
		width := max(ts.screen.Columns()-6, 10)
		lines = append(lines, "   "+ansi.Enclose(runewidth.Truncate(t.errMsg, width, "..."), ansi.Red, ansi.Standard, ansi.AttrNone))
	}
	return lines
}

func (ts *Tasks) statusLine(t *Task, frame string, now time.Time) string {
	icon, color := ts.icon(t.status, frame)
	icon = ansi.Enclose(icon, color, ansi.Standard, ansi.AttrNone)
	elapsed := formatElapsed(t.status, t.elapsed(now))
	columns := ts.screen.Columns()

	if columns < minColumnsForBar {
		desc := runewidth.Truncate(t.description, max(columns-15, 10), "...")
		if t.status == StatusPending {
			return icon + " " + desc
		}
		return fmt.Sprintf("%s %s %3.0f%% %s", icon, desc, t.progress, dim(elapsed))
	}

	desc := textwidth.Pad(runewidth.Truncate(t.description, maxDescWidth, "..."), descColumn, textwidth.PadRight)
	if t.status == StatusPending {
		return icon + " " + desc
	}
	bar := ansi.Enclose(ts.barContent(t.status, barWidth(columns), t.progress), color, ansi.Standard, ansi.AttrNone)
	return fmt.Sprintf("%s %s [%s] %3.0f%% %s", icon, desc, bar, t.progress, dim(elapsed))
}

func (ts *Tasks) icon(s Status, frame string) (string, ansi.Color) {
	switch s {
	case StatusRunning:
		return frame, ansi.Cyan
	case StatusSuccess:
		return ts.glyphs.success, ansi.Green
	case StatusFailed:
		return ts.glyphs.failed, ansi.Red
	case StatusSkipped:
		return ts.glyphs.skipped, ansi.Gray
	default:
		return ts.glyphs.pending, ansi.Gray
	}
}

func (ts *Tasks) barContent(s Status, width int, percent float64) string {
	filled := min(int(float64(width)*percent/100), width)
	g := ts.glyphs

	switch s {
	case StatusSuccess:
		return textwidth.Repeat(g.done, width)
	case StatusFailed:
		return textwidth.Repeat(g.failDone, filled) + textwidth.Repeat(g.failTodo, width-filled)
	case StatusRunning:
		if filled > 0 {
			return textwidth.Repeat(g.done, filled-1) + g.head + textwidth.Repeat(g.todo, width-filled)
		}
		return textwidth.Repeat(g.todo, width)
	default:
		return textwidth.Repeat(g.todo, width)
	}
}

func barWidth(columns int) int {
	w := columns - iconWidth - maxDescWidth - percentWidth - timeWidth - layoutPadding
	return min(max(w, minBarWidth), maxBarWidth)
}

func formatElapsed(s Status, d time.Duration) string {
	switch s {
	case StatusRunning, StatusSuccess, StatusFailed:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return ""
	}
}

func dim(s string) string {
	if s == "" {
		return ""
	}
	return ansi.Enclose(s, ansi.Gray, ansi.Standard, ansi.AttrNone)
}
