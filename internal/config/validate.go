package config

import (
	_ "embed"
	"errors"

	"github.com/metalagman/droneplug/internal/schemacheck"
)

//go:embed schema.json
var schemaJSON string

var settingsSchema = schemacheck.MustCompile("config", schemaJSON)

// ErrInvalidConfig is returned when settings do not match the config schema.
var ErrInvalidConfig = errors.New("config schema validation failed")

// ValidateSettings checks raw viper settings against the config schema.
func ValidateSettings(settings map[string]any) error {
	return settingsSchema.Check(settings, ErrInvalidConfig)
}
