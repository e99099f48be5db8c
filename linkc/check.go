package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario>...",
		Short: "Compare the outcome of each call to its expectation",
		Long: `Link each call of the scenarios and compare the selected feature,
type, ties, inferred type arguments, and errors to the expect section
of the call. Calls without an expect section are only linked.
It fails if any call does not meet its expectation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			var n, failed int
			for _, path := range args {
				s, err := opts.load(path)
				if err != nil {
					return err
				}
				d := opts.diagnoser(s)
				for _, c := range s.Cases {
					n++
					sel, _ := s.Link(c)
					diffs := c.Verify(sel, d.Check(sel))
					if len(diffs) == 0 {
						fmt.Fprintf(w, "%s %s\n", pterm.FgGreen.Sprint("PASS"), c.Call)
						continue
					}
					failed++
					fmt.Fprintf(w, "%s %s\n", pterm.FgRed.Sprint("FAIL"), c.Call)
					for _, diff := range diffs {
						fmt.Fprintf(w, "\t%s\n", diff)
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d calls failed", failed, n)
			}
			fmt.Fprintf(w, "%d calls passed\n", n)
			return nil
		},
	}
}
