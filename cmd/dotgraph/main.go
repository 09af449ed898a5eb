// Command dotgraph parses graph description files into nodes and adjacency lists.
//
// Usage:
//
//	dotgraph parse [file]          parse a file or stdin and print the graph
//	dotgraph tokens [file]         print the tokens of a file or stdin
//	dotgraph gen                   generate a random graph document
//	dotgraph bench <file>          time repeated parses with each grammar variant
//	dotgraph watch <file>          serve the parsed graph and push updates on change
//	dotgraph version               print the version
//
// Flags can also be set using environment variables prefixed with DOTGRAPH_, for example
// DOTGRAPH_VARIANT=base.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, r io.Reader, w io.Writer, wErr io.Writer) error {
	cmd := newRootCmd(r, w, wErr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
