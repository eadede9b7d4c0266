package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/vvakame/bookshelf/internal/graph"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the GraphQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), graph.SDL())
			return err
		},
	}
}
