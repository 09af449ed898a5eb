// Package bench times repeated parses of a document with each grammar variant.
package bench

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/teleivo/dotgraph"
)

// DefaultRuns is the number of parses per variant if none is configured.
const DefaultRuns = 100

// Options configures a benchmark run.
type Options struct {
	Runs     int                // Runs per variant, defaults to DefaultRuns.
	Variants []dotgraph.Variant // Variants to time, defaults to all variants.
}

// Result holds the timing of one variant.
type Result struct {
	Variant dotgraph.Variant
	Runs    int
	Total   time.Duration
	Nodes   int // Nodes of the parsed graph.
	Entries int // Entries is the number of adjacency entries of the parsed graph.
}

// PerRun returns the mean duration of one parse.
func (r Result) PerRun() time.Duration {
	if r.Runs == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Runs)
}

// Run parses src opts.Runs times with every variant in opts.Variants. Every parse tokenizes src
// again. Run stops early if ctx is cancelled and fails on the first parse error.
func Run(ctx context.Context, src []byte, opts Options) ([]Result, error) {
	if opts.Runs < 0 {
		return nil, fmt.Errorf("invalid number of runs %d: must be >= 0", opts.Runs)
	}
	if opts.Runs == 0 {
		opts.Runs = DefaultRuns
	}
	if len(opts.Variants) == 0 {
		opts.Variants = []dotgraph.Variant{dotgraph.Base, dotgraph.Extended}
	}

	results := make([]Result, 0, len(opts.Variants))
	for _, variant := range opts.Variants {
		result := Result{Variant: variant}
		for range opts.Runs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			start := time.Now()
			g, err := dotgraph.Parse(src, variant)
			result.Total += time.Since(start)
			if err != nil {
				return nil, fmt.Errorf("failed to parse using %s variant: %w", variant, err)
			}

			result.Runs++
			result.Nodes = len(g.Nodes)
			result.Entries = g.EntryCount()
		}
		results = append(results, result)
	}
	return results, nil
}

// Write writes results as a table to w.
func Write(w io.Writer, results []Result) (err error) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() {
		if ferr := tw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("error flushing output: %v", ferr)
		}
	}()

	_, _ = fmt.Fprintf(tw, "VARIANT\tRUNS\tTOTAL\tPER RUN\tNODES\tENTRIES\n")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%d\n", r.Variant, r.Runs, r.Total, r.PerRun(), r.Nodes, r.Entries)
	}
	return nil
}
