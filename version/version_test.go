package version

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/testutil"
)

func TestNew_Defaults(t *testing.T) {
	info := New("termkit-demo")
	assert.Equal(t, "termkit-demo", info.Name)
	assert.Equal(t, "0.0.0-dev", info.Version)
	assert.Equal(t, "unknown", info.BuildDate)
	assert.Equal(t, "unknown", info.GitCommit)
	assert.NotEmpty(t, info.GoVersion)
}

func TestFromBuildInfo_KeepsLdflags(t *testing.T) {
	info := &Info{Name: "x", Version: "1.2.3", BuildDate: "2024-01-01", GitCommit: "abc123"}
	info.FromBuildInfo()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "2024-01-01", info.BuildDate)
	assert.Equal(t, "abc123", info.GitCommit)
}

func TestInfo_String(t *testing.T) {
	info := &Info{
		Version:   "1.2.3",
		BuildDate: "2024-01-01",
		GitCommit: "abc123",
		Name:      "termkit-demo",
	}
	assert.Equal(t, "termkit-demo version 1.2.3 (commit: abc123, built: 2024-01-01)", info.String())
}

func newConsole() (*console.Console, *testutil.Buffer) {
	buf := &testutil.Buffer{}
	opts := console.DefaultOptions()
	opts.DisableANSI = true
	return console.New(buf, opts), buf
}

func TestNewCommand_HumanReadable(t *testing.T) {
	c, buf := newConsole()
	cmd := NewCommand(New("termkit-demo"), func() *console.Console { return c }, nil)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	lines := buf.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "termkit-demo Version", lines[0])
	out := buf.String()
	for _, want := range []string{"| Version ", "| Build Date ", "| Git Commit ", "| 0.0.0-dev ", "+---"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Field")
}

func TestNewCommand_JSON(t *testing.T) {
	c, buf := newConsole()
	format := "json"
	cmd := NewCommand(New("termkit-demo"), func() *console.Console { return c }, &format)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(buf.String()), &parsed), buf.String())
	assert.Equal(t, "termkit-demo", parsed.Name)
	assert.Equal(t, "0.0.0-dev", parsed.Version)
}

func TestNewCommand_Quiet(t *testing.T) {
	c, buf := newConsole()
	cmd := NewCommand(New("termkit-demo"), func() *console.Console { return c }, nil)
	cmd.SetArgs([]string{"--quiet"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "0.0.0-dev", strings.TrimSpace(buf.String()))
}
