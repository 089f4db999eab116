package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SCOUTING_CONFIG is set
//  3. env (prefix SCOUTING_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SCOUTING_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCOUTING_ADDR, SCOUTING_DATA_DIR, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SCOUTING_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "scouting_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DataDir == "":
		return nil, fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case cfg.TopStandouts < 1:
		return nil, fmt.Errorf("%w: top_standouts must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
