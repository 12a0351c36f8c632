package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/stepclip/internal/clip"
	"go.klb.dev/stepclip/internal/lines"
	"go.klb.dev/stepclip/internal/logging"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy [file]",
		Short: "Copy a single unit of the input to the clipboard (like pbcopy)",
		Long: `Processes FILE (or stdin) into units and copies unit --index to the
system clipboard. Useful from scripts and editor key bindings:

  stepclip copy --index 3 notes.txt`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runCopy(cmd, v, args) },
	}

	f := cmd.Flags()
	f.Int("index", 1, "1-based unit to copy")
	addClipboardFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runCopy(cmd *cobra.Command, v *viper.Viper, args []string) error {
	closeLog, err := setupLogging(v, false)
	if err != nil {
		return err
	}
	defer closeLog()

	raw, err := requireInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	backend, err := newBackend(v)
	if err != nil {
		return err
	}
	return copyUnit(backend, lines.Process(raw), v.GetInt("index"))
}

func copyUnit(backend clip.Backend, units []string, index int) error {
	if index < 1 || index > len(units) {
		return fmt.Errorf("index %d out of range: input has %d units", index, len(units))
	}
	unit := units[index-1]
	if err := backend.Write(unit); err != nil {
		return fmt.Errorf("copy unit %d: %w", index, err)
	}
	slog.Info("unit copied", "unit", index, "total", len(units), "backend", backend.Name())
	logging.Preview("copied text", unit)
	return nil
}
