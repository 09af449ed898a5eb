package bench_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
	"github.com/teleivo/dotgraph"
	"github.com/teleivo/dotgraph/bench"
	"github.com/teleivo/dotgraph/gen"
)

func TestRun(t *testing.T) {
	doc, err := gen.Generate(gen.Options{Name: "BigGraph", Nodes: 100, Connectivity: 0.1, Seed: 1})
	require.NoError(t, err, "Generate")

	t.Run("AllVariants", func(t *testing.T) {
		results, err := bench.Run(context.Background(), doc.Src, bench.Options{Runs: 3})

		require.NoError(t, err, "Run")
		require.EqualValues(t, len(results), 2, "number of results")
		for i, variant := range []dotgraph.Variant{dotgraph.Base, dotgraph.Extended} {
			assert.EqualValues(t, results[i].Variant, variant, "Variant")
			assert.EqualValues(t, results[i].Runs, 3, "Runs")
			assert.EqualValues(t, results[i].Nodes, 100, "Nodes")
			assert.EqualValues(t, results[i].Entries, 2*doc.Edges, "Entries")
			assert.True(t, results[i].PerRun() <= results[i].Total, "PerRun() %s must not exceed Total %s", results[i].PerRun(), results[i].Total)
		}
	})

	t.Run("DefaultRuns", func(t *testing.T) {
		results, err := bench.Run(context.Background(), []byte("graph g { a; }"), bench.Options{Variants: []dotgraph.Variant{dotgraph.Base}})

		require.NoError(t, err, "Run")
		require.EqualValues(t, len(results), 1, "number of results")
		assert.EqualValues(t, results[0].Runs, bench.DefaultRuns, "Runs")
	})

	t.Run("ParseError", func(t *testing.T) {
		_, err := bench.Run(context.Background(), []byte("digraph g { a -> b; }"), bench.Options{Runs: 1})

		var syntaxErr *dotgraph.SyntaxError
		assert.True(t, errors.As(err, &syntaxErr), "want SyntaxError, got %v", err)
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := bench.Run(ctx, doc.Src, bench.Options{Runs: 1})

		assert.True(t, errors.Is(err, context.Canceled), "want %v, got %v", context.Canceled, err)
	})

	t.Run("NegativeRuns", func(t *testing.T) {
		_, err := bench.Run(context.Background(), doc.Src, bench.Options{Runs: -1})

		assert.NotNil(t, err, "Run with negative runs")
	})
}

func TestWrite(t *testing.T) {
	var sb strings.Builder
	results := []bench.Result{{Variant: dotgraph.Extended, Runs: 2, Total: 10, Nodes: 3, Entries: 4}}

	err := bench.Write(&sb, results)

	require.NoError(t, err, "Write")
	want := "VARIANT   RUNS  TOTAL  PER RUN  NODES  ENTRIES\n" +
		"extended  2     10ns   5ns      3      4\n"
	assert.EqualValues(t, sb.String(), want, "Write")
}
