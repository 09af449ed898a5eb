package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teleivo/dotgraph"
	"github.com/teleivo/dotgraph/bench"
)

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <file>",
		Short: "Time repeated parses of a graph",
		Long:  "Parse a file repeatedly with each grammar variant and print the total and mean duration.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading file: %w", err)
			}

			opts := bench.Options{Runs: a.v.GetInt("bench.runs")}
			if !a.v.GetBool("bench.all") {
				variant, err := a.variant()
				if err != nil {
					return err
				}
				opts.Variants = []dotgraph.Variant{variant}
			}

			results, err := bench.Run(cmd.Context(), src, opts)
			if err != nil {
				return err
			}
			return bench.Write(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().Int("runs", bench.DefaultRuns, "Number of parses per variant")
	cmd.Flags().Bool("all", false, "Time every grammar variant instead of only --variant")
	_ = a.v.BindPFlag("bench.runs", cmd.Flags().Lookup("runs"))
	_ = a.v.BindPFlag("bench.all", cmd.Flags().Lookup("all"))
	return cmd
}
