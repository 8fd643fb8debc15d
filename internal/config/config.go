// Package config loads cubetrainer settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubetrainer"
	"github.com/SeamusWaldron/cubetrainer/internal/trainer"
)

// Config holds settings read at startup. Command-line flags override them.
type Config struct {
	DBPath      string        `env:"CUBETRAINER_DB"`
	Mode        string        `env:"CUBETRAINER_MODE"         envDefault:"training"`
	AnimDelay   time.Duration `env:"CUBETRAINER_ANIM_DELAY"   envDefault:"300ms"`
	LogLevel    string        `env:"CUBETRAINER_LOG_LEVEL"    envDefault:"info"`
	ScanTimeout time.Duration `env:"CUBETRAINER_SCAN_TIMEOUT" envDefault:"10s"`
	PrimeMarks  []string      `env:"CUBETRAINER_PRIME_MARKS"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing accepts but the trainer cannot use.
func (c Config) Validate() error {
	if _, err := trainer.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("CUBETRAINER_MODE: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("CUBETRAINER_LOG_LEVEL: %w", err)
	}
	if c.AnimDelay < 0 {
		return fmt.Errorf("CUBETRAINER_ANIM_DELAY: negative delay %s", c.AnimDelay)
	}
	if c.ScanTimeout <= 0 {
		return fmt.Errorf("CUBETRAINER_SCAN_TIMEOUT: must be positive, got %s", c.ScanTimeout)
	}
	return nil
}

// TrainerMode returns the configured mode. Call after Validate.
func (c Config) TrainerMode() trainer.Mode {
	m, _ := trainer.ParseMode(c.Mode)
	return m
}

// Level returns the configured log level, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// ParsePolicy returns the tolerant parse policy with any configured prime
// marks added to the defaults.
func (c Config) ParsePolicy() cubetrainer.ParsePolicy {
	p := cubetrainer.DefaultParsePolicy()
	for _, mark := range c.PrimeMarks {
		if mark != "" {
			p.PrimeMarks = append(p.PrimeMarks, mark)
		}
	}
	return p
}
