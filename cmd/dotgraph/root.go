package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/teleivo/dotgraph"
	"github.com/teleivo/dotgraph/internal/version"
)

// app holds the configuration shared by all commands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd(r io.Reader, w io.Writer, wErr io.Writer) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "dotgraph",
		Short:         "Parse graph description files",
		Long:          "dotgraph parses a subset of the DOT language into node lists and adjacency lists.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if a.v.GetBool("debug") {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetIn(r)
	root.SetOut(w)
	root.SetErr(wErr)

	root.PersistentFlags().String("variant", dotgraph.Extended.String(), "Grammar variant to parse with: 'base' or 'extended'")
	root.PersistentFlags().Bool("debug", false, "Debug output")
	_ = a.v.BindPFlag("variant", root.PersistentFlags().Lookup("variant"))
	_ = a.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	a.v.SetEnvPrefix("DOTGRAPH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newGenCmd(a),
		newBenchCmd(a),
		newWatchCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Version())
				return err
			},
		},
	)
	return root
}

func (a *app) variant() (dotgraph.Variant, error) {
	return dotgraph.NewVariant(a.v.GetString("variant"))
}

// readSource reads the file named by the first argument or stdin if there is none.
func readSource(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return src, nil
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return src, nil
}
