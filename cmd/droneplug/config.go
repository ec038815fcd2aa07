package main

import (
	"github.com/metalagman/droneplug/internal/app"
	"github.com/metalagman/droneplug/internal/config"
	"github.com/metalagman/droneplug/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	required := cmd.Flags().Changed("config")
	return config.Load(viper.GetViper(), opts.cfgFile, required)
}

func buildComponents(cmd *cobra.Command, opts *rootOptions) (config.Config, app.Components, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return config.Config{}, app.Components{}, err
	}
	logging.Init(cfg.Debug)
	c, err := app.Build(cfg, app.Environ(opts.environ()))
	if err != nil {
		return config.Config{}, app.Components{}, err
	}
	return cfg, c, nil
}
