package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/stepclip/internal/lines"
)

func newSplitCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Print the copy units for the input",
		Long: `Processes FILE (or stdin) the same way a copy session does and prints the
resulting units, numbered in copy order.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runSplit(cmd, v, args) },
	}

	f := cmd.Flags()
	f.Bool("json", false, "output a JSON array")
	f.Bool("count", false, "print only the number of units")
	addConfigFlag(cmd)

	return cmd
}

func runSplit(cmd *cobra.Command, v *viper.Viper, args []string) error {
	raw, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	units := lines.Process(raw)
	out := cmd.OutOrStdout()

	switch {
	case v.GetBool("count"):
		_, err = fmt.Fprintln(out, len(units))
		return err
	case v.GetBool("json"):
		if units == nil {
			units = []string{}
		}
		enc, err := json.MarshalIndent(units, "", "  ")
		if err != nil {
			return fmt.Errorf("encode units: %w", err)
		}
		_, err = fmt.Fprintln(out, string(enc))
		return err
	}

	printUnits(out, units)
	return nil
}

func printUnits(out io.Writer, units []string) {
	if len(units) == 0 {
		_, _ = fmt.Fprintln(out, "No units.")
		return
	}

	tw := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "#\tUNIT\n")
	_, _ = fmt.Fprintf(tw, "-\t----\n")
	for i, u := range units {
		_, _ = fmt.Fprintf(tw, "%d\t%s\n", i+1, u)
	}
	_ = tw.Flush()
}
