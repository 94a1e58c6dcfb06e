package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"orr-overpotential/internal/overpotential"
)

// Env is the process configuration read from ORR_* environment variables.
//
// An unset ORR_LOG_LEVEL leaves the choice to the binary: info for the
// server, warn for the CLI. ORR_TOLERANCE=0 makes the sign check exact.
type Env struct {
	Addr                 string        `env:"ORR_ADDR" envDefault:":8080"`
	LogLevel             string        `env:"ORR_LOG_LEVEL"`
	ReactionType         string        `env:"ORR_REACTION_TYPE" envDefault:"orr"`
	EquilibriumPotential float64       `env:"ORR_EQUILIBRIUM_POTENTIAL" envDefault:"1.23"`
	Tolerance            float64       `env:"ORR_TOLERANCE" envDefault:"1e-9"`
	PresetsFile          string        `env:"ORR_PRESETS_FILE"`
	OTLPEnabled          bool          `env:"ORR_OTLP_ENABLED" envDefault:"true"`
	ShutdownTimeout      time.Duration `env:"ORR_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Env from the environment, after applying any .env file.
func Load() (Env, error) {
	if err := LoadDotEnv(); err != nil {
		return Env{}, err
	}

	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	if _, err := cfg.EngineConfig(); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

// EngineConfig returns the default engine configuration described by the
// environment.
func (e Env) EngineConfig() (overpotential.Config, error) {
	t, err := overpotential.ParseReactionType(e.ReactionType)
	if err != nil {
		return overpotential.Config{}, fmt.Errorf("ORR_REACTION_TYPE: %w", err)
	}
	cfg := overpotential.Config{
		ReactionType:         t,
		EquilibriumPotential: e.EquilibriumPotential,
		Tolerance:            e.Tolerance,
	}
	if err := cfg.Validate(); err != nil {
		return overpotential.Config{}, err
	}
	return cfg, nil
}
