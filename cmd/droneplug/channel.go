package main

import (
	"fmt"

	"github.com/metalagman/droneplug/pkg/input"
	"github.com/spf13/cobra"
)

func channelCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "channel [-- payload...]",
		Short: "Print which input channel would be used, without reading it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := buildComponents(cmd, opts)
			if err != nil {
				return err
			}
			src := input.Source{Args: invocationArgs(cmd, args), Env: c.Env}
			ch := c.Resolver.Select(src)
			if ch == nil {
				return fmt.Errorf("%w: no input channel is active", input.ErrInputNotFound)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ch.Name())
			return nil
		},
	}
}
