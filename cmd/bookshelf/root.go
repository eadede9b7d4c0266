package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vvakame/bookshelf/internal/catalog"
	"github.com/vvakame/bookshelf/internal/graph"
	"github.com/vvakame/bookshelf/internal/log"
)

const envPrefix = "BOOKSHELF"

func newRootCmd() *cobra.Command {
	conf := viper.New()

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "GraphQL API over an authors and books catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := loadConfig(conf, cmd.Flags())
			if err != nil {
				return err
			}
			log.SetVerbosity(conf.GetInt("verbosity"))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "configuration file (yaml, json or toml)")
	flags.String("dataset", "", "dataset YAML file; the built-in sample is used when empty")
	flags.Int("verbosity", 0, "log verbosity")

	root.AddCommand(
		newServeCmd(conf),
		newQueryCmd(conf),
		newCSVCmd(conf),
		newSchemaCmd(),
	)

	return root
}

// loadConfig merges flags, BOOKSHELF_* environment variables and the optional
// config file into conf. Flags win over the environment, which wins over the file.
func loadConfig(conf *viper.Viper, flags *pflag.FlagSet) error {
	conf.SetEnvPrefix(envPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()

	err := conf.BindPFlags(flags)
	if err != nil {
		return err
	}

	if cfg := conf.GetString("config"); cfg != "" {
		conf.SetConfigFile(cfg)
		err = conf.ReadInConfig()
		if err != nil {
			return fmt.Errorf("reading config %s: %w", cfg, err)
		}
	}

	return nil
}

// newExecutableSchema loads the configured dataset and binds it to the schema.
func newExecutableSchema(ctx context.Context, conf *viper.Viper) (*graph.Executable, error) {
	logger := log.FromContext(ctx)

	path := conf.GetString("dataset")
	ds, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.V(1).Info("dataset loaded", "path", path, "authors", len(ds.Authors()), "books", len(ds.Books()))

	return graph.NewExecutableSchema(graph.Config{
		Resolvers: graph.NewResolver(ds),
	})
}

