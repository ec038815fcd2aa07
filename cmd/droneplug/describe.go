package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func describeCmd(opts *rootOptions) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "describe [-- payload...]",
		Short: "Resolve the payload and print a readable summary",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := buildComponents(cmd, opts)
			if err != nil {
				return err
			}
			res, err := c.Resolver.ResolveSource(resolveSource(cmd, args, c.Env))
			if err != nil {
				return err
			}
			return c.Renderer.Describe(cmd.OutOrStdout(), res.Channel, res.Input)
		},
	}
	cmd.Flags().String("style", "notty", "glamour style: ascii, dark, light, notty")
	if err := viper.BindPFlag("describe.style", cmd.Flags().Lookup("style")); err != nil {
		return nil, fmt.Errorf("bind style flag: %w", err)
	}
	return cmd, nil
}
