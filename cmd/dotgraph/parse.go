package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/teleivo/dotgraph"
	"github.com/teleivo/dotgraph/token"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a graph and print it",
		Long:  "Parse a graph from a file, or stdin if no file is given, and print its nodes and adjacency lists.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			variant, err := a.variant()
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			start := time.Now()
			g, err := dotgraph.Parse(src, variant)
			if err != nil {
				return fmt.Errorf("error parsing: %w", err)
			}
			a.logger.Debug("parsed graph", "variant", variant, "nodes", len(g.Nodes), "entries", g.EntryCount(), "elapsed", time.Since(start))

			w := cmd.OutOrStdout()
			switch format := a.v.GetString("format"); format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(g)
			case "text":
				header := "graph"
				if g.Directed {
					header = "digraph"
				}
				if g.Name != "" {
					header += " " + g.Name
				}
				_, _ = fmt.Fprintln(w, header)

				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				defer func() {
					if ferr := tw.Flush(); ferr != nil && err == nil {
						err = fmt.Errorf("error flushing output: %v", ferr)
					}
				}()
				_, _ = fmt.Fprintf(tw, "INDEX\tNODE\tNEIGHBORS\n")
				for i, name := range g.Nodes {
					_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", i, name, joinInts(g.Neighbors(i)))
				}
				return nil
			default:
				return fmt.Errorf("invalid format %q: valid ones are 'text' or 'json'", format)
			}
		},
	}
	cmd.Flags().String("format", "text", "Print the graph as 'text' or 'json'")
	_ = a.v.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func joinInts(in []int) string {
	s := make([]string, len(in))
	for i, v := range in {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, " ")
}

func newTokensCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a graph",
		Long:  "Print position, kind and literal of every token in a file, or stdin if no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer func() {
				if ferr := tw.Flush(); ferr != nil && err == nil {
					err = fmt.Errorf("error flushing output: %v", ferr)
				}
			}()

			_, _ = fmt.Fprintf(tw, "POSITION\tKIND\tLITERAL\n")
			for tok := range dotgraph.Tokenize(src) {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", tokenPosition(tok), tok.Kind, tok.Literal)
			}
			return nil
		},
	}
}

func tokenPosition(tok token.Token) string {
	if tok.Start == tok.End {
		return tok.Start.String()
	}
	return tok.Start.String() + "-" + tok.End.String()
}
