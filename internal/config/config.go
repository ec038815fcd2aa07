// Package config provides configuration loading and management for droneplug.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = ".droneplug.yaml"

// EnvPrefix namespaces droneplug settings in the environment.
const EnvPrefix = "DRONEPLUG"

// Config is the root configuration.
type Config struct {
	Output   OutputConfig   `json:"output"             mapstructure:"output"`
	Strict   bool           `json:"strict,omitempty"   mapstructure:"strict"`
	EnvFile  string         `json:"env_file,omitempty" mapstructure:"env_file"`
	Describe DescribeConfig `json:"describe"           mapstructure:"describe"`
	Debug    bool           `json:"debug,omitempty"    mapstructure:"debug"`
}

// OutputConfig controls how a resolved payload is written.
type OutputConfig struct {
	Format    string `json:"format"              mapstructure:"format"`
	Canonical bool   `json:"canonical,omitempty" mapstructure:"canonical"`
	Indent    int    `json:"indent,omitempty"    mapstructure:"indent"`
}

// DescribeConfig controls the markdown summary.
type DescribeConfig struct {
	Style string `json:"style,omitempty" mapstructure:"style"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.format", FormatJSON)
	v.SetDefault("output.canonical", false)
	v.SetDefault("output.indent", 2)
	v.SetDefault("strict", false)
	v.SetDefault("env_file", "")
	v.SetDefault("describe.style", "notty")
	v.SetDefault("debug", false)
}

// Load reads the config file at path into v, validates it and decodes it.
// A missing file is only an error when required is set.
func Load(v *viper.Viper, path string, required bool) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil || required {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := ValidateSettings(v.AllSettings()); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
