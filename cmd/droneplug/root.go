package main

import (
	"fmt"
	"os"

	"github.com/metalagman/droneplug/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOptions struct {
	cfgFile string
	environ func() []string
}

// Execute runs the root command.
func Execute() error {
	cmd, err := newRootCmd(os.Environ)
	if err != nil {
		return err
	}
	return cmd.Execute()
}

func newRootCmd(environ func() []string) (*cobra.Command, error) {
	opts := &rootOptions{environ: environ}
	cmd := &cobra.Command{
		Use:   "droneplug [-- payload...]",
		Short: "droneplug resolves the input a CI host hands to a plugin",
		Long: "Resolve the plugin payload from arguments after --, from DRONE_* and PLUGIN_* " +
			"environment variables, or from stdin, and print it.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, opts)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", config.DefaultPath, "config file path")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("format", config.FormatJSON, "output format: json or yaml")
	flags.Bool("canonical", false, "write canonical JSON (RFC 8785)")
	flags.Int("indent", 2, "indentation width, 0 for compact JSON")
	flags.Bool("strict", false, "require repo, build, workspace and vargs in the payload")
	flags.String("env-file", "", "dotenv file filling variables missing from the environment")

	for key, name := range map[string]string{
		"output.format":    "format",
		"output.canonical": "canonical",
		"output.indent":    "indent",
		"strict":           "strict",
		"env_file":         "env-file",
		"debug":            "debug",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind %s flag: %w", name, err)
		}
	}

	cmd.AddCommand(validateCmd(opts))
	describe, err := describeCmd(opts)
	if err != nil {
		return nil, err
	}
	cmd.AddCommand(describe)
	cmd.AddCommand(channelCmd(opts))
	return cmd, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
