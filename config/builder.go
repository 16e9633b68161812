package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by the builder.
const EnvPrefix = "CARETRACK_"

// Builder layers configuration sources. Later layers override earlier
// ones; zero values never override.
type Builder struct {
	layers []*Config
	err    error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{layers: make([]*Config, 0, 3)}
}

// WithDefaults adds the built-in settings.
func (b *Builder) WithDefaults() *Builder {
	b.layers = append(b.layers, Default())
	return b
}

// WithEnv adds settings from the process environment.
func (b *Builder) WithEnv() *Builder {
	return b.withEnv(env.Options{Prefix: EnvPrefix})
}

// WithEnvMap adds settings from the given variables instead of the
// process environment.
func (b *Builder) WithEnvMap(vars map[string]string) *Builder {
	return b.withEnv(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func (b *Builder) withEnv(opts env.Options) *Builder {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error reading environment: %w", err))
		return b
	}
	b.layers = append(b.layers, cfg)
	return b
}

// WithOverrides adds explicit settings, typically from command-line flags.
func (b *Builder) WithOverrides(cfg *Config) *Builder {
	if cfg != nil {
		b.layers = append(b.layers, cfg)
	}
	return b
}

// Build merges the layers and validates the result.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error building config: %w", b.err)
	}

	cfg := &Config{}
	for _, layer := range b.layers {
		if err := mergo.Merge(cfg, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load builds the configuration from defaults, the environment and the
// given overrides.
func Load(overrides *Config) (*Config, error) {
	return NewBuilder().WithDefaults().WithEnv().WithOverrides(overrides).Build()
}
