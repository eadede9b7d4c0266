package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vvakame/bookshelf/internal/catalog"
	"github.com/vvakame/bookshelf/internal/csvexport"
)

func newCSVCmd(conf *viper.Viper) *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Print the authors as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := catalog.LoadFile(conf.GetString("dataset"))
			if err != nil {
				return err
			}

			out, err := csvexport.Export(ds, fields)
			if err != nil {
				return err
			}
			if out == "" {
				return nil
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", []string{"id", "name", "books"}, "columns to export: "+strings.Join(fieldNames(), ", "))

	return cmd
}

func fieldNames() []string {
	names := make([]string, 0, len(csvexport.AllFields))
	for _, f := range csvexport.AllFields {
		names = append(names, f.String())
	}
	return names
}
