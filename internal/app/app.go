// Package app wires the resolver, renderer and environment for a single
// CLI invocation.
package app

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/metalagman/droneplug/internal/config"
	"github.com/metalagman/droneplug/internal/logging"
	"github.com/metalagman/droneplug/internal/render"
	"github.com/metalagman/droneplug/pkg/input"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Components are the pieces a command needs to resolve and print input.
type Components struct {
	Logger   zerolog.Logger
	Env      input.Environment
	Resolver *input.Resolver
	Renderer *render.Renderer
}

// Environ holds the process environment as KEY=VALUE pairs, as returned by
// os.Environ.
type Environ []string

// Module provides Components from a config.Config and an Environ.
var Module = fx.Options(
	fx.Provide(
		newLogger,
		newEnvironment,
		newResolver,
		render.New,
	),
)

// Build assembles Components for cfg.
func Build(cfg config.Config, environ Environ) (Components, error) {
	var c Components
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, environ),
		Module,
		fx.Populate(&c.Logger, &c.Env, &c.Resolver, &c.Renderer),
	)
	if err := app.Err(); err != nil {
		return Components{}, fmt.Errorf("build components: %w", err)
	}
	return c, nil
}

func newLogger() zerolog.Logger {
	return logging.ForResolution()
}

// newEnvironment snapshots the environment once and fills gaps from the
// configured dotenv file. The process environment is left untouched.
func newEnvironment(cfg config.Config, environ Environ, logger zerolog.Logger) (input.Environment, error) {
	env := input.SnapshotEnvironment(environ)
	if cfg.EnvFile == "" {
		return env, nil
	}
	extra, err := godotenv.Read(cfg.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", cfg.EnvFile, err)
	}
	logger.Debug().Str("path", cfg.EnvFile).Int("keys", len(extra)).Msg("env file loaded")
	return env.Merge(extra), nil
}

func newResolver(logger zerolog.Logger) *input.Resolver {
	return input.NewResolver(input.WithLogger(logger))
}
