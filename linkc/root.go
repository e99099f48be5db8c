package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/eaburns/link/link"
	"github.com/eaburns/link/scenario"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type options struct {
	root       string
	traceDepth int
	color      string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "linkc",
		Short: "Overload resolution and type argument inference for scenario files",
		Long: `linkc links the call sites of scenario files to candidate features.

A scenario file, in YAML or TOML, declares classes, candidate features,
and call sites. Included files are found relative to the root directory.

Usage:
  linkc resolve scenario.yaml   Print the selected feature of each call
  linkc rank scenario.yaml      Print the ranking of the candidates of each call
  linkc check scenario.yaml     Compare the outcomes to the expected ones`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setColor(opts.color, cmd.OutOrStdout()); err != nil {
				return err
			}
			link.SetTraceDepth(opts.traceDepth)
			link.SetTraceOutput(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.root, "root", "r", ".", "directory of scenario files and their includes")
	cmd.PersistentFlags().IntVar(&opts.traceDepth, "trace-depth", 0, "max depth of the linking trace (0 = no trace; -1 = infinite)")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output: auto, always, or never")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "note the rejected candidates of errors")

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newRankCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	return cmd
}

func setColor(mode string, out io.Writer) error {
	switch mode {
	case "always":
		pterm.EnableColor()
	case "never":
		pterm.DisableColor()
	case "auto":
		if isTerminal(out) {
			pterm.EnableColor()
		} else {
			pterm.DisableColor()
		}
	default:
		return fmt.Errorf("bad --color %q: want auto, always, or never", mode)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (opts *options) load(path string) (*scenario.Scenario, error) {
	s, err := scenario.Load(opts.root, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

func (opts *options) diagnoser(s *scenario.Scenario) *link.Diagnoser {
	prefix := ""
	if opts.root != "" && opts.root != "." {
		prefix = filepath.Clean(opts.root) + string(filepath.Separator)
	}
	return &link.Diagnoser{Files: s.Files, TrimPrefix: prefix, Verbose: opts.verbose}
}

func winnerString(sel *link.Selection) string {
	if sel.Winner == nil {
		return "none"
	}
	return sel.Winner.Feature().String()
}
