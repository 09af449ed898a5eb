package main

import (
	"github.com/spf13/cobra"
	"github.com/teleivo/dotgraph/gen"
)

func newGenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random graph",
		Long:  "Generate a random graph document with the given number of nodes and fraction of all possible edges.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := gen.NewNames(a.v.GetString("gen.names"))
			if err != nil {
				return err
			}
			opts := gen.Options{
				Name:         a.v.GetString("gen.name"),
				Nodes:        a.v.GetInt("gen.nodes"),
				Connectivity: a.v.GetFloat64("gen.connectivity"),
				Directed:     a.v.GetBool("gen.directed"),
				Seed:         a.v.GetUint64("gen.seed"),
				Names:        names,
				Clustered:    a.v.GetBool("gen.clustered"),
			}

			doc, err := gen.Generate(opts)
			if err != nil {
				return err
			}
			a.logger.Debug("generated graph", "nodes", len(doc.Nodes), "edges", doc.Edges)

			_, err = cmd.OutOrStdout().Write(doc.Src)
			return err
		},
	}
	cmd.Flags().String("name", "graphname", "Name of the graph")
	cmd.Flags().IntP("nodes", "n", 1000, "Number of nodes")
	cmd.Flags().Float64P("connectivity", "c", 0.1, "Fraction of all possible edges in [0, 1]")
	cmd.Flags().Bool("directed", false, "Generate a digraph")
	cmd.Flags().Uint64("seed", 1, "Seed of the random number generator")
	cmd.Flags().String("names", gen.IndexNames.String(), "Node names: 'index' or 'uuid'")
	cmd.Flags().Bool("clustered", false, "Concentrate edges among nodes with nearby indices")
	for _, name := range []string{"name", "nodes", "connectivity", "directed", "seed", "names", "clustered"} {
		_ = a.v.BindPFlag("gen."+name, cmd.Flags().Lookup(name))
	}
	return cmd
}
