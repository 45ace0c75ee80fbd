package config

import (
	"fmt"
	"net"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment overrides of the web binary.
type Env struct {
	ServerHost string `env:"SERVER_HOST"`
	ServerPort string `env:"SERVER_PORT"`
	ConfigPath string `env:"MATURITY_ATLAS_CONFIG"`
	LogLevel   string `env:"LOG_LEVEL"`
}

func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overrides cfg with the variables that are set and validates the result.
func (e Env) Apply(cfg *Config) error {
	if e.ServerHost != "" || e.ServerPort != "" {
		host, port, err := net.SplitHostPort(cfg.Server.Addr)
		if err != nil {
			return fmt.Errorf("server address %q: %w", cfg.Server.Addr, err)
		}
		if e.ServerHost != "" {
			host = e.ServerHost
		}
		if e.ServerPort != "" {
			port = e.ServerPort
		}
		cfg.Server.Addr = net.JoinHostPort(host, port)
	}
	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	return cfg.Validate()
}
