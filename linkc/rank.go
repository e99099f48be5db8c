package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eaburns/link/link"
	"github.com/eaburns/link/scenario"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRankCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rank <scenario>...",
		Short: "Print the candidates of each call as ranked",
		Long: `Link each call of the scenarios and print a table of its candidates
in lookup order: visibility, arity mismatches, argument conformance hints,
inferred type arguments, result type, and final state.
The winner is marked with *, candidates tied with it with =.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, path := range args {
				s, err := opts.load(path)
				if err != nil {
					return err
				}
				for _, c := range s.Cases {
					sel, _ := s.Link(c)
					fmt.Fprintln(w, pterm.FgCyan.Sprint(c.Call.String()))
					if len(sel.Candidates) == 0 {
						fmt.Fprintln(w, "no candidates")
						continue
					}
					table, err := pterm.DefaultTable.WithHasHeader().WithData(rankTable(sel)).Srender()
					if err != nil {
						return err
					}
					fmt.Fprintln(w, table)
				}
			}
			return nil
		},
	}
}

func rankTable(sel *link.Selection) pterm.TableData {
	data := pterm.TableData{
		{"", "candidate", "visible", "arity", "type arity", "hints", "bindings", "result", "state"},
	}
	tied := make(map[*link.Candidate]bool)
	for _, c := range sel.Ties {
		tied[c] = true
	}
	for _, c := range sel.Candidates {
		mark := ""
		switch {
		case c == sel.Winner:
			mark = "*"
		case tied[c]:
			mark = "="
		}
		var hints []string
		for i := 0; i < c.ArgumentCount(); i++ {
			hints = append(hints, c.Hints(i).String())
		}
		result := ""
		if t := c.ResultType(); t != nil {
			result = t.String()
		}
		data = append(data, []string{
			mark,
			c.Feature().String(),
			strconv.FormatBool(c.Visible()),
			strconv.Itoa(c.ArityMismatch()),
			strconv.Itoa(c.TypeArityMismatch()),
			strings.Join(hints, "; "),
			strings.Join(scenario.BindingStrings(c), ", "),
			result,
			c.State().String(),
		})
	}
	return data
}
