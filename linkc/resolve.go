package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <scenario>...",
		Short: "Print the selected feature and type of each call",
		Long: `Link each call of the scenarios and print the selected feature,
the type of the call, and the errors of the selection.

Examples:
  linkc resolve overloads.yaml
  linkc resolve -r testdata -v overloads.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, path := range args {
				s, err := opts.load(path)
				if err != nil {
					return err
				}
				d := opts.diagnoser(s)
				for _, c := range s.Cases {
					sel, _ := s.Link(c)
					fmt.Fprintf(w, "%s -> %s : %s\n", c.Call, winnerString(sel), sel.Type())
					for _, err := range d.Check(sel) {
						fmt.Fprintln(w, pterm.FgRed.Sprint(err.Error()))
					}
				}
			}
			return nil
		},
	}
}
