package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vvakame/bookshelf/internal/gqlfun"
	"github.com/vvakame/bookshelf/internal/log"
)

func newQueryCmd(conf *viper.Viper) *cobra.Command {
	var variables string
	var operationName string

	cmd := &cobra.Command{
		Use:   "query [document]",
		Short: "Run one GraphQL document in-process and print the JSON response",
		Long:  "Run one GraphQL document in-process. The document is read from stdin when no argument or \"-\" is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.WithLogger(cmd.Context(), log.New())

			var document string
			if len(args) == 0 || args[0] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				document = string(b)
			} else {
				document = args[0]
			}

			params := &gqlfun.Params{
				Query:         document,
				OperationName: operationName,
			}
			if variables != "" {
				err := json.Unmarshal([]byte(variables), &params.Variables)
				if err != nil {
					return fmt.Errorf("parsing --variables: %w", err)
				}
			}

			es, err := newExecutableSchema(ctx, conf)
			if err != nil {
				return err
			}

			resp := gqlfun.Execute(ctx, es, params)

			b, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			if err != nil {
				return err
			}

			if len(resp.Errors) != 0 {
				return errors.New("query returned errors")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&variables, "variables", "", "variables as a JSON object")
	flags.StringVar(&operationName, "operation", "", "operation to run when the document holds several")

	return cmd
}
