package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Env holds the environment overrides of the CLI.
type Env struct {
	ConfigPath string `env:"HEXUNITS_CONFIG" envDefault:"hexunits.yaml"`
	LogLevel   string `env:"HEXUNITS_LOG_LEVEL"`
	StorePath  string `env:"HEXUNITS_STORE"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, errors.Wrap(err, "parse env")
	}
	return e, nil
}

// Apply overrides file values with the ones set in the environment.
func (e Env) Apply(cfg *Config) {
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	if e.StorePath != "" {
		cfg.Store.Path = e.StorePath
	}
}
