package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/termkit/ansi"
	"github.com/jongio/termkit/console"
	"github.com/jongio/termkit/level"
	"github.com/jongio/termkit/table"
)

// NewCommand creates a version command printing through the console that
// out returns when the command runs. outputFormat optionally points at a
// global format flag; "json" prints the Info as JSON.
func NewCommand(info *Info, out func() *console.Console, outputFormat *string) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Display %s version information", info.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := out()

			format := ""
			if outputFormat != nil {
				format = *outputFormat
			}

			if format == "json" {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				return c.PrintBlock(level.AlwaysPrint, string(data), ansi.Style{})
			}

			if quiet {
				return c.PrintBlock(level.AlwaysPrint, info.Version, ansi.Style{})
			}

			t := c.Table(
				table.R("Field", "Version", "Value", info.Version),
				table.R("Field", "Build Date", "Value", info.BuildDate),
				table.R("Field", "Git Commit", "Value", info.GitCommit),
				table.R("Field", "Go", "Value", info.GoVersion),
			).HideHeaders(true)
			title := fmt.Sprintf("%s Version", info.Name)
			if err := c.PrintBlock(level.AlwaysPrint, title, ansi.NewStyle(ansi.LightCyan, ansi.Standard)); err != nil {
				return err
			}
			return t.Output(c, level.AlwaysPrint, ansi.Style{})
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print version number")
	return cmd
}
