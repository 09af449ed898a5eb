package main

import (
	"github.com/spf13/cobra"
	"github.com/teleivo/dotgraph/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Serve a parsed graph and push updates on change",
		Long:  "Serve the graph parsed from file as JSON on http://127.0.0.1:<port>/graph and push the result of re-parsing it to WebSocket clients on /events whenever it changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := a.variant()
			if err != nil {
				return err
			}

			wa, err := watch.New(watch.Config{
				File:    args[0],
				Port:    a.v.GetString("watch.port"),
				Variant: variant,
				Debug:   a.v.GetBool("debug"),
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			return wa.Watch(cmd.Context())
		},
	}
	cmd.Flags().String("port", "8080", "Port to serve on, '0' picks a random port")
	_ = a.v.BindPFlag("watch.port", cmd.Flags().Lookup("port"))
	return cmd
}
