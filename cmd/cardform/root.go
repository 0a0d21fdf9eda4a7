package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-cardform/internal/config"
	"github.com/goliatone/go-cardform/internal/logger"
)

// app carries state resolved by the root command for subcommands.
type app struct {
	configPath  string
	logLevel    string
	logJSON     bool
	storeDriver string
	storePath   string

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cardform",
		Short:         "Card entry pipeline: normalize, classify, collect and store card details",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.logJSON, "log-json", false, "emit JSON logs")
	flags.StringVar(&a.storeDriver, "store", "", "record store driver (memory, jsonfile, sqlite, redis)")
	flags.StringVar(&a.storePath, "store-path", "", "file path for the jsonfile and sqlite stores")

	root.AddCommand(
		newFormatCmd(),
		newClassifyCmd(),
		newFillCmd(a),
		newRecordsCmd(a),
		newServeCmd(a),
	)
	return root
}

// init loads configuration, applies flag overrides and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx, a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = a.logJSON
	}
	if flags.Changed("store") {
		cfg.Store.Driver = a.storeDriver
	}
	if flags.Changed("store-path") {
		cfg.Store.Path = a.storePath
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Output: cmd.ErrOrStderr(),
		JSON:   cfg.Log.JSON,
		Prefix: "cardform",
	})
	return nil
}
