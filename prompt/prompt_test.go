package prompt

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/testutil"
)

func newPrompter(t *testing.T, input string) (*Prompter, *console.Console, *testutil.Buffer) {
	t.Helper()
	buf := &testutil.Buffer{}
	opts := console.DefaultOptions()
	opts.DisableANSI = true
	opts.Clock = testutil.FixedClock(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC))
	c := console.New(buf, opts)
	return New(c, strings.NewReader(input)), c, buf
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		question   string
		opts       []AskOption
		expected   string
		transcript string
	}{
		{
			name: "free text", input: "bob\n", question: "Name?",
			expected: "bob", transcript: "Name? bob\n",
		},
		{
			name: "last line without newline", input: "  bob ", question: "Name?",
			expected: "bob", transcript: "Name? bob\n",
		},
		{
			name: "retry until a choice matches", input: "c\nB\n", question: "Pick",
			opts:     []AskOption{Choices("a", "b"), ShowChoices()},
			expected: "b", transcript: "Pick (a/b): c\nPick (a/b): B\n",
		},
		{
			name: "case sensitive", input: "B\nb\n", question: "Pick",
			opts:     []AskOption{Choices("a", "b"), CaseSensitive()},
			expected: "b", transcript: "Pick B\nPick b\n",
		},
		{
			name: "default on blank", input: "\n", question: "Port",
			opts:     []AskOption{Default("80")},
			expected: "80", transcript: "Port (80): \n",
		},
		{
			name: "blank is retried", input: "\nok\n", question: "Say",
			expected: "ok", transcript: "Say \nSay ok\n",
		},
		{
			name: "blank allowed", input: "\n", question: "Note",
			opts:     []AskOption{AllowBlank()},
			expected: "", transcript: "Note \n",
		},
		{
			name: "validate", input: "x\n5\n", question: "Count",
			opts: []AskOption{Validate(func(s string) (string, error) {
				n, err := strconv.Atoi(s)
				return strconv.Itoa(n * 2), err
			})},
			expected: "10", transcript: "Count x\nCount 5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, buf := newPrompter(t, tt.input)

			answer, err := p.Ask(tt.question, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, answer)
			assert.Equal(t, tt.transcript, buf.String())
		})
	}
}

func TestAsk_NoInput(t *testing.T) {
	p, _, buf := newPrompter(t, "")
	_, err := p.Ask("Name?")
	assert.ErrorIs(t, err, ErrNoInput)
	assert.Equal(t, "Name? \n", buf.String())

	p, _, _ = newPrompter(t, "c\nd")
	_, err = p.Ask("Pick", Choices("a"))
	assert.ErrorIs(t, err, ErrNoInput)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestAsk_ReadError(t *testing.T) {
	_, c, _ := newPrompter(t, "")
	p := New(c, failingReader{})

	_, err := p.Ask("Name?")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoInput)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestAsk_Terminal(t *testing.T) {
	p, c, buf := newPrompter(t, "bob\n")
	p.terminal = true

	answer, err := p.Ask("Name?")
	require.NoError(t, err)
	assert.Equal(t, "bob", answer)

	require.NoError(t, c.Info("hi"))
	assert.Equal(t, "Name? 09:30:00,0000 INFO: hi\n", buf.String())
}

func TestAsk_Masked(t *testing.T) {
	p, _, buf := newPrompter(t, "")
	p.terminal = true
	p.fd = 7
	var gotFd int
	p.readSecret = func(fd int) ([]byte, error) {
		gotFd = fd
		return []byte("s3cret"), nil
	}

	answer, err := p.Ask("Password?", Masked())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", answer)
	assert.Equal(t, 7, gotFd)
	assert.Equal(t, "Password? \n", buf.String())
}

func TestAsk_MaskedWithoutTerminal(t *testing.T) {
	p, _, buf := newPrompter(t, "s3cret\n")

	answer, err := p.Ask("Password?", Masked())
	require.NoError(t, err)
	assert.Equal(t, "s3cret", answer)
	assert.NotContains(t, buf.String(), "s3cret")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"1\n", true},
		{"no\n", false},
		{"False\n", false},
		{"maybe\nn\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, _, _ := newPrompter(t, tt.input)
			ok, err := p.Confirm("Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestConfirmDefault(t *testing.T) {
	p, _, buf := newPrompter(t, "\n")
	ok, err := p.ConfirmDefault("Proceed?", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Proceed? (y): \n", buf.String())

	p, _, _ = newPrompter(t, "\n")
	ok, err = p.ConfirmDefault("Proceed?", false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPressToContinue(t *testing.T) {
	p, _, buf := newPrompter(t, "\n")
	require.NoError(t, p.PressToContinue(""))
	assert.Equal(t, "Press ENTER to continue \n", buf.String())
}

func TestChoose(t *testing.T) {
	colours := []string{"red", "green"}

	tests := []struct {
		name  string
		input string
		opts  []ChooseOption
		index int
		value string
	}{
		{"by number", "2\n", nil, 1, "green"},
		{"by value", "Green\n", nil, 1, "green"},
		{"retry", "3\nred\n", nil, 0, "red"},
		{"default", "\n", []ChooseOption{ChooseDefault(1)}, 1, "green"},
		{"blank allowed", "\n", []ChooseOption{ChooseAllowBlank()}, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := newPrompter(t, tt.input)
			i, v, err := p.Choose("Pick a colour", colours, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.index, i)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestChoose_Layout(t *testing.T) {
	p, _, buf := newPrompter(t, "2\n")
	_, _, err := p.Choose("Pick a colour", []string{"red", "green"})
	require.NoError(t, err)
	assert.Equal(t, "Pick a colour\n[1] red\n[2] green\n  > 2\n", buf.String())

	choices := make([]string, 10)
	for i := range choices {
		choices[i] = "c" + strconv.Itoa(i)
	}
	p, _, buf = newPrompter(t, "10\n")
	i, v, err := p.Choose("Many", choices)
	require.NoError(t, err)
	assert.Equal(t, 9, i)
	assert.Equal(t, "c9", v)
	assert.Contains(t, buf.String(), "\n[ 1] c0\n")
	assert.Contains(t, buf.String(), "\n[10] c9\n   > 10\n")
}

func TestChoose_NoChoices(t *testing.T) {
	p, _, _ := newPrompter(t, "1\n")
	_, _, err := p.Choose("Pick", nil)
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	p, _, buf := newPrompter(t, "2\n1\n\n")

	picked, err := p.Toggle("Services", []string{"api", "web"}, []bool{true})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, picked)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Services\n[1] [X] api\n[2] [ ] web\n"), out)
	assert.Contains(t, out, "[1] [X] api\n[2] [X] web\n")
	assert.True(t, strings.HasSuffix(out, "[1] [ ] api\n[2] [X] web\n  > \n"), out)
}

func TestToggle_EndOfInputFinishes(t *testing.T) {
	p, _, _ := newPrompter(t, "1\n")
	picked, err := p.Toggle("Services", []string{"api"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, picked)
}
