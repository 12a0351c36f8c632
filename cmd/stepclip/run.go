package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/stepclip/internal/logging"
	"go.klb.dev/stepclip/internal/session"
	"go.klb.dev/stepclip/internal/tui"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Open the interactive copy session",
		Long: `Opens a full-screen editor. Paste or type text on the left, press ctrl+s to
start, then ctrl+y (or enter on the copy panel) to copy each unit in turn.
ctrl+r resets the session; the text is kept unless clear-on-reset is set.

The editor is pre-filled from FILE, or from stdin when text is piped in:

  pbpaste | stepclip run

Logs are discarded unless --log-file is given, since the screen belongs to
the editor.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runTUI(cmd, v, args) },
	}

	f := cmd.Flags()
	f.Bool("clear-on-reset", false, "also clear the input text on reset")
	f.Bool("alt-screen", true, "use the terminal's alternate screen")
	addClipboardFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runTUI(cmd *cobra.Command, v *viper.Viper, args []string) error {
	closeLog, err := setupLogging(v, true)
	if err != nil {
		return err
	}
	defer closeLog()

	stdin := cmd.InOrStdin()
	raw, err := readInput(args, stdin)
	if err != nil {
		return err
	}

	backend, err := newBackend(v)
	if err != nil {
		return err
	}
	slog.Info("stepclip starting", "version", Version, "backend", backend.Name(), "input_bytes", len(raw))

	m := tui.New(session.New(backend), tui.Options{
		Input:        raw,
		ClearOnReset: v.GetBool("clear-on-reset"),
		Backend:      backend.Name(),
	})

	var opts []tea.ProgramOption
	if v.GetBool("alt-screen") {
		opts = append(opts, tea.WithAltScreen())
	}
	if !logging.IsTTY(stdin) {
		// stdin carried the text; read keys from the terminal instead.
		opts = append(opts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
