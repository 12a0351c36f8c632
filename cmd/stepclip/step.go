package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/stepclip/internal/session"
)

func newStepCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "step FILE",
		Short: "Copy the units of FILE one by one from a plain prompt",
		Long: `Prints each unit of FILE in turn. Press enter to copy it and move on,
"r" then enter to start over, "q" then enter to quit.

A failed copy keeps the same unit so you can retry.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runStep(cmd, v, args) },
	}

	addClipboardFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runStep(cmd *cobra.Command, v *viper.Viper, args []string) error {
	closeLog, err := setupLogging(v, false)
	if err != nil {
		return err
	}
	defer closeLog()

	if args[0] == "-" {
		return errors.New("step reads answers from stdin; pass a file instead of -")
	}
	raw, err := requireInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	backend, err := newBackend(v)
	if err != nil {
		return err
	}
	return stepSession(session.New(backend), raw, cmd.InOrStdin(), cmd.OutOrStdout())
}

// stepSession drives ctrl from line-oriented answers on in.
func stepSession(ctrl *session.Controller, raw string, in io.Reader, out io.Writer) error {
	if !ctrl.Start(raw) {
		return errNoInput
	}
	sc := bufio.NewScanner(in)
	for {
		snap := ctrl.Snapshot()
		total := len(snap.Units)
		if snap.Complete() {
			_, _ = fmt.Fprintf(out, "✓ Done: %d/%d units copied.\n", total, total)
			return nil
		}

		_, _ = fmt.Fprintf(out, "[%d/%d] %s\n", snap.Cursor+1, total, snap.Units[snap.Cursor])
		_, _ = fmt.Fprint(out, "enter=copy r=reset q=quit > ")
		if !sc.Scan() {
			_, _ = fmt.Fprintln(out)
			return sc.Err()
		}

		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "":
			if _, err := ctrl.CopyCurrent(); err != nil {
				_, _ = fmt.Fprintf(out, "! %v, press enter to retry\n", err)
			}
		case "r":
			ctrl.Reset()
			ctrl.Start(raw)
			_, _ = fmt.Fprintln(out, "Session reset.")
		case "q":
			done, total := ctrl.Progress()
			_, _ = fmt.Fprintf(out, "Stopped at %d/%d.\n", done, total)
			return nil
		default:
			_, _ = fmt.Fprintln(out, "? enter, r or q")
		}
	}
}
