// stepclip: copy pasted text to the clipboard one line at a time.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "stepclip",
		Short: "Copy text to the clipboard one line at a time",
		Long: `stepclip splits pasted text into copy units and walks you through
copying each one to the system clipboard, tracking progress as you go.

Blank lines are dropped. A line containing a dot followed by more text is
split in two right after the first dot.

Use "stepclip run" for the interactive editor, "stepclip step FILE" for a
plain prompt, and "stepclip split" to preview the units.

Config file search order (first found wins):
  /etc/stepclip/stepclip.toml
  $HOME/.config/stepclip/stepclip.toml
  path supplied via --config

All flags can be set via STEPCLIP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newStepCmd(),
		newSplitCmd(),
		newCopyCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stepclip %s\n", Version)
		},
	}
}
