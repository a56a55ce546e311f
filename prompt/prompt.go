// Package prompt asks questions on a console and reads the answers: free
// text, yes/no, numbered multiple choice and toggle lists.
//
// Every question is repeated until a valid answer is read. When the input
// ends first, the question fails with ErrNoInput.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/logutil"
	"github.com/jongio/termkit/textwidth"
)

// ErrNoInput is returned when the input ends before a valid answer.
var ErrNoInput = errors.New("no input to answer the question")

// Screen is the part of *console.Console that prompts draw through.
type Screen interface {
	PrintText(m console.Message) error
	NewLine() error
	ClearLastLine() error
	MarkLineStart()
}

var _ Screen = (*console.Console)(nil)

// Prompter reads answers from one input.
type Prompter struct {
	screen     Screen
	in         *bufio.Reader
	fd         int
	terminal   bool
	readSecret func(fd int) ([]byte, error)
	log        *logutil.ComponentLogger
}

// New returns a prompter asking on s and reading from in. When in is a
// terminal, typed input is echoed by the terminal and masked questions hide
// it; otherwise answers are echoed to s so the transcript stays readable.
func New(s Screen, in io.Reader) *Prompter {
	p := &Prompter{
		screen:     s,
		in:         bufio.NewReader(in),
		fd:         -1,
		readSecret: term.ReadPassword,
		log:        logutil.NewLogger("prompt"),
	}
	if f, ok := in.(interface{ Fd() uintptr }); ok {
		fd := f.Fd()
		p.fd = int(fd)
		p.terminal = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return p
}

// Stdin returns a prompter reading from os.Stdin.
func Stdin(s Screen) *Prompter {
	return New(s, os.Stdin)
}

// AskOption configures a question.
type AskOption func(*ask)

type ask struct {
	defaultValue  *string
	choices       []string
	showChoices   bool
	caseSensitive bool
	allowBlank    bool
	masked        bool
	validate      func(string) (string, error)
	style         ansi.Style
}

// Default is the answer used when the input line is blank. It is shown in
// parentheses after the question.
func Default(value string) AskOption {
	return func(a *ask) { a.defaultValue = &value }
}

// Choices restricts answers to the given values. Matching ignores case
// unless CaseSensitive is set; the answer returned is the listed value.
func Choices(values ...string) AskOption {
	return func(a *ask) { a.choices = values }
}

// ShowChoices lists the choices after the question, as in "(a/b/c)".
func ShowChoices() AskOption {
	return func(a *ask) { a.showChoices = true }
}

// CaseSensitive makes choice matching exact.
func CaseSensitive() AskOption {
	return func(a *ask) { a.caseSensitive = true }
}

// AllowBlank accepts an empty answer.
func AllowBlank() AskOption {
	return func(a *ask) { a.allowBlank = true }
}

// Masked hides typed input when reading from a terminal.
func Masked() AskOption {
	return func(a *ask) { a.masked = true }
}

// Validate transforms an accepted answer. An error rejects it and the
// question is asked again.
func Validate(fn func(string) (string, error)) AskOption {
	return func(a *ask) { a.validate = fn }
}

// Color sets the question colours.
func Color(text, background ansi.Color) AskOption {
	return func(a *ask) { a.style = ansi.NewStyle(text, background) }
}

// Ask prints question and returns the first valid answer.
func (p *Prompter) Ask(question string, opts ...AskOption) (string, error) {
	var a ask
	for _, opt := range opts {
		opt(&a)
	}

	full := question
	switch {
	case a.defaultValue != nil:
		full += " (" + *a.defaultValue + "): "
	case a.showChoices && len(a.choices) > 0:
		full += " (" + strings.Join(a.choices, "/") + "): "
	default:
		full += " "
	}

	for {
		if err := p.screen.PrintText(console.Message{
			Level:      level.AlwaysPrint,
			Content:    console.Text(full),
			Text:       a.style.Text,
			Background: a.style.Background,
			Timestamp:  console.TimestampOff,
		}); err != nil {
			return "", err
		}

		line, eof, err := p.readLine(a.masked)
		if err != nil {
			return "", err
		}

		if answer, ok := a.accept(line); ok {
			if a.validate == nil {
				return answer, nil
			}
			validated, err := a.validate(answer)
			if err == nil {
				return validated, nil
			}
			p.log.Debug("answer rejected", "question", question, "error", err)
		}
		if eof {
			return "", ErrNoInput
		}
	}
}

func (a *ask) accept(line string) (string, bool) {
	if line == "" {
		switch {
		case a.defaultValue != nil:
			return *a.defaultValue, true
		case a.allowBlank:
			return "", true
		default:
			return "", false
		}
	}
	if a.choices == nil {
		return line, true
	}
	for _, c := range a.choices {
		if c == line || (!a.caseSensitive && strings.EqualFold(c, line)) {
			return c, true
		}
	}
	return "", false
}

// readLine reads one trimmed line. eof is set when no more input follows.
func (p *Prompter) readLine(masked bool) (line string, eof bool, err error) {
	if masked && p.terminal {
		secret, err := p.readSecret(p.fd)
		if err != nil {
			return "", false, fmt.Errorf("read masked input: %w", err)
		}
		return strings.TrimSpace(string(secret)), false, p.screen.NewLine()
	}

	raw, err := p.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		if raw == "" {
			return "", true, p.screen.NewLine()
		}
		eof = true
	case err != nil:
		return "", false, fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSpace(raw)

	if p.terminal {
		p.screen.MarkLineStart()
		return line, eof, nil
	}
	if !masked && line != "" {
		if err := p.screen.PrintText(console.Message{
			Level:     level.AlwaysPrint,
			Content:   console.Text(line),
			Timestamp: console.TimestampOff,
		}); err != nil {
			return "", false, err
		}
	}
	return line, eof, p.screen.NewLine()
}

var (
	yes = []string{"y", "yes", "true", "1"}
	no  = []string{"n", "no", "false", "0"}
)

// Confirm asks a yes/no question. y, yes, true and 1 mean yes; n, no, false
// and 0 mean no.
func (p *Prompter) Confirm(question string, opts ...AskOption) (bool, error) {
	opts = append(opts, Choices(slices.Concat(yes, no)...))
	answer, err := p.Ask(question, opts...)
	if err != nil {
		return false, err
	}
	return slices.Contains(yes, strings.ToLower(answer)), nil
}

// ConfirmDefault is Confirm with the answer used for a blank line.
func (p *Prompter) ConfirmDefault(question string, def bool, opts ...AskOption) (bool, error) {
	d := "n"
	if def {
		d = "y"
	}
	return p.Confirm(question, append(opts, Default(d))...)
}

// PressToContinue waits for the enter key.
func (p *Prompter) PressToContinue(message string) error {
	if message == "" {
		message = "Press ENTER to continue"
	}
	_, err := p.Ask(message, AllowBlank())
	return err
}

// ChooseOption configures a multiple choice question.
type ChooseOption func(*choose)

type choose struct {
	defaultIndex int
	allowBlank   bool
	style        ansi.Style
	display      func(i int, choice string) string
}

// ChooseDefault selects choice i, counted from 0, on a blank line.
func ChooseDefault(i int) ChooseOption {
	return func(c *choose) { c.defaultIndex = i }
}

// ChooseAllowBlank lets a blank line answer with no choice, reported as
// index -1.
func ChooseAllowBlank() ChooseOption {
	return func(c *choose) { c.allowBlank = true }
}

// ChooseColor sets the colours of the question and the choice labels.
func ChooseColor(text, background ansi.Color) ChooseOption {
	return func(c *choose) { c.style = ansi.NewStyle(text, background) }
}

func chooseDisplay(fn func(i int, choice string) string) ChooseOption {
	return func(c *choose) { c.display = fn }
}

// Choose lists choices numbered from 1 and returns the index and value of
// the one picked. Either the number or the value is accepted:
//
//	Pick a colour
//	[1] red
//	[2] green
//	  > 2
func (p *Prompter) Choose(question string, choices []string, opts ...ChooseOption) (int, string, error) {
	c := choose{defaultIndex: -1}
	for _, opt := range opts {
		opt(&c)
	}
	if len(choices) == 0 {
		return -1, "", fmt.Errorf("choose %q: no choices", question)
	}

	keyWidth := len(strconv.Itoa(len(choices)))
	var b strings.Builder
	b.WriteString(question)
	for i, choice := range choices {
		if c.display != nil {
			choice = c.display(i, choice)
		}
		key := textwidth.Pad(strconv.Itoa(i+1), keyWidth, textwidth.PadLeft)
		b.WriteString("\n")
		b.WriteString(ansi.Enclose("["+key+"]", ansi.Green, ansi.Standard, ansi.AttrNone))
		b.WriteString(" " + choice)
	}
	b.WriteString("\n" + strings.Repeat(" ", keyWidth+1))
	b.WriteString(ansi.Enclose(">", ansi.Green, ansi.Standard, ansi.AttrNone))

	accepted := make([]string, 0, len(choices)*2)
	for i := range choices {
		accepted = append(accepted, strconv.Itoa(i+1))
	}
	accepted = append(accepted, choices...)

	askOpts := []AskOption{Choices(accepted...), Color(c.style.Text, c.style.Background)}
	if c.defaultIndex >= 0 && c.defaultIndex < len(choices) {
		askOpts = append(askOpts, Default(strconv.Itoa(c.defaultIndex+1)))
	}
	if c.allowBlank {
		askOpts = append(askOpts, AllowBlank())
	}

	answer, err := p.Ask(b.String(), askOpts...)
	if err != nil {
		return -1, "", err
	}
	if answer == "" {
		return -1, "", nil
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
		return n - 1, choices[n-1], nil
	}
	i := slices.Index(choices, answer)
	return i, answer, nil
}

// Toggle shows choices with check boxes. Each answer flips one choice and
// the list is drawn again; a blank line ends the question and returns the
// indexes of the checked choices.
//
//	[X] api
//	[ ] web
func (p *Prompter) Toggle(question string, choices []string, checked []bool, opts ...ChooseOption) ([]int, error) {
	state := make([]bool, len(choices))
	copy(state, checked)

	on := ansi.NewBuilder(ansi.NewStyle(ansi.LightGreen, ansi.Standard)).Bold().Write("[X]").Reset().Write(" ").String()
	off := ansi.NewBuilder(ansi.NewStyle(ansi.LightRed, ansi.Standard)).Bold().Write("[ ]").Reset().Write(" ").String()

	display := chooseDisplay(func(i int, choice string) string {
		if state[i] {
			return on + choice
		}
		return off + choice
	})
	opts = append(opts, ChooseAllowBlank(), display)

	for {
		i, _, err := p.Choose(question, choices, opts...)
		if err != nil {
			return nil, err
		}
		if i < 0 {
			break
		}
		state[i] = !state[i]

		for range len(choices) + 2 {
			if err := p.screen.ClearLastLine(); err != nil {
				return nil, err
			}
		}
	}

	var out []int
	for i, v := range state {
		if v {
			out = append(out, i)
		}
	}
	return out, nil
}
