package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [-- payload...]",
		Short: "Resolve the payload and check it has repo, build, workspace and vargs",
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
			if err := res.Input.Validate(); err != nil {
				return err
			}
			if _, err := res.Input.Payload(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "payload from %s channel is valid\n", res.Channel)
			return nil
		},
	}
}
