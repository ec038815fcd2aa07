package main

import (
	"github.com/metalagman/droneplug/internal/logging"
	"github.com/metalagman/droneplug/pkg/input"
	"github.com/spf13/cobra"
)

// invocationArgs rebuilds an argv for the resolver from the command name and
// the positional args cobra left over. Flags cobra parsed are not included.
// Cobra consumes the "--" delimiter, so it is put back where pflag found it.
func invocationArgs(cmd *cobra.Command, args []string) []string {
	argv := []string{cmd.Root().Name()}
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return append(argv, args...)
	}
	argv = append(argv, args[:dash]...)
	argv = append(argv, input.ArgsDelimiter)
	return append(argv, args[dash:]...)
}

func resolveSource(cmd *cobra.Command, args []string, env input.Environment) input.Source {
	return input.Source{
		Args:  invocationArgs(cmd, args),
		Env:   env,
		Stdin: cmd.InOrStdin(),
	}
}

func runResolve(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, c, err := buildComponents(cmd, opts)
	if err != nil {
		return err
	}
	res, err := c.Resolver.ResolveSource(resolveSource(cmd, args, c.Env))
	if err != nil {
		return err
	}
	if cfg.Strict {
		if err := res.Input.Validate(); err != nil {
			return err
		}
	}
	if logging.DebugEnabled() && res.Raw != nil {
		c.Logger.Debug().Str("channel", res.Channel).RawJSON("raw", res.Raw).Msg("raw payload")
	}
	c.Logger.Debug().Str("channel", res.Channel).Msg("writing payload")
	return c.Renderer.Write(cmd.OutOrStdout(), res.Input)
}
