package gen_test

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/dotgraph"
	"github.com/teleivo/dotgraph/gen"
)

func TestGenerate(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		tests := map[string]gen.Options{
			"NoNodes":           {Nodes: 0, Connectivity: 0.5},
			"SingleNode":        {Nodes: 1, Connectivity: 1},
			"Sparse":            {Nodes: 50, Connectivity: 0.1, Seed: 1},
			"Dense":             {Nodes: 30, Connectivity: 0.9, Seed: 2},
			"Complete":          {Nodes: 12, Connectivity: 1, Seed: 3},
			"Directed":          {Nodes: 40, Connectivity: 0.2, Directed: true, Seed: 4},
			"DirectedDense":     {Nodes: 20, Connectivity: 0.8, Directed: true, Seed: 5},
			"UUIDNames":         {Nodes: 25, Connectivity: 0.3, Names: gen.UUIDNames, Seed: 6},
			"Clustered":         {Nodes: 60, Connectivity: 0.1, Clustered: true, Seed: 7},
			"ClusteredDense":    {Nodes: 25, Connectivity: 0.7, Clustered: true, Seed: 8},
			"ClusteredDirected": {Nodes: 30, Connectivity: 0.3, Clustered: true, Directed: true, Seed: 9},
			"NoEdges":           {Nodes: 10, Connectivity: 0, Seed: 10},
			"CustomName":        {Name: "BigGraph", Nodes: 10, Connectivity: 0.5, Seed: 11},
		}

		for name, opts := range tests {
			t.Run(name, func(t *testing.T) {
				doc, err := gen.Generate(opts)
				require.NoError(t, err, "Generate(%+v)", opts)

				n := opts.Nodes
				maxEdges := n * (n - 1)
				if !opts.Directed {
					maxEdges /= 2
				}
				assert.EqualValues(t, doc.Edges, int(opts.Connectivity*float64(maxEdges)), "number of edges")

				variant := dotgraph.Base
				if opts.Directed {
					variant = dotgraph.Extended
				}
				g, err := dotgraph.Parse(doc.Src, variant)
				require.NoError(t, err, "Parse(Generate(%+v))", opts)

				assert.EqualValues(t, len(g.Nodes), n, "len(Nodes)")
				assert.EqualValues(t, g.Nodes, doc.Nodes, "Nodes in declaration order")
				assert.EqualValues(t, g.Directed, opts.Directed, "Directed")
				wantEntries := 2 * doc.Edges
				if opts.Directed {
					wantEntries = doc.Edges
				}
				assert.EqualValues(t, g.EntryCount(), wantEntries, "EntryCount()")
				if opts.Name != "" {
					assert.EqualValues(t, g.Name, opts.Name, "Name")
				} else {
					assert.EqualValues(t, g.Name, "graphname", "Name")
				}
				for from, to := range g.Adjacency {
					for _, i := range to {
						assert.True(t, from < n && i < n, "edge %d -> %d out of range [0, %d)", from, i, n)
						assert.True(t, from != i, "self-loop on %d", from)
					}
				}
			})
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		opts := gen.Options{Nodes: 30, Connectivity: 0.4, Seed: 42, Names: gen.UUIDNames, Clustered: true}

		a, err := gen.Generate(opts)
		require.NoError(t, err, "Generate")
		b, err := gen.Generate(opts)
		require.NoError(t, err, "Generate")

		assert.True(t, bytes.Equal(a.Src, b.Src), "same seed must generate the same document")

		opts.Seed++
		c, err := gen.Generate(opts)
		require.NoError(t, err, "Generate")
		assert.False(t, bytes.Equal(a.Src, c.Src), "different seeds should generate different documents")
	})

	t.Run("Names", func(t *testing.T) {
		doc, err := gen.Generate(gen.Options{Nodes: 3, Names: gen.UUIDNames})
		require.NoError(t, err, "Generate")
		for _, name := range doc.Nodes {
			_, err := uuid.Parse(name)
			assert.NoError(t, err, "node name %q must be a UUID", name)
		}

		doc, err = gen.Generate(gen.Options{Nodes: 3})
		require.NoError(t, err, "Generate")
		for i, name := range doc.Nodes {
			assert.EqualValues(t, name, strconv.Itoa(i), "node name")
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		tests := map[string]gen.Options{
			"NegativeNodes":        {Nodes: -1},
			"NegativeConnectivity": {Nodes: 2, Connectivity: -0.1},
			"ConnectivityAboveOne": {Nodes: 2, Connectivity: 1.5},
			"UnknownNames":         {Nodes: 2, Names: gen.Names(9)},
			"BlankName":            {Name: "  ", Nodes: 2},
			"NameWithWhitespace":   {Name: "my graph", Nodes: 2},
			"NameWithSemicolon":    {Name: "g;", Nodes: 2},
			"NameIsBrace":          {Name: "{", Nodes: 2},
			"NameIsKeyword":        {Name: "graph", Nodes: 2},
			"NameIsEdgeOperator":   {Name: "--", Nodes: 2},
		}

		for name, opts := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := gen.Generate(opts)

				assert.NotNil(t, err, "Generate(%+v)", opts)
			})
		}
	})
}

func TestNewNames(t *testing.T) {
	for _, want := range []gen.Names{gen.IndexNames, gen.UUIDNames} {
		got, err := gen.NewNames(want.String())

		require.NoError(t, err, "NewNames(%q)", want)
		assert.EqualValues(t, got, want, "NewNames(%q)", want)
	}

	_, err := gen.NewNames("letters")
	assert.NotNil(t, err, "NewNames(%q)", "letters")
}
