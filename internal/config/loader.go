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
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if DYNASTY_CONFIG is set
//  3. env (prefix DYNASTY_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("DYNASTY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %v", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: DYNASTY_ADDR, DYNASTY_FAIRNESS_THRESHOLD, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("DYNASTY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "dynasty_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.FairnessThreshold <= 0 || c.FairnessThreshold >= 1 {
		return fmt.Errorf("%w: fairness_threshold %.3f must be in (0, 1)", ErrInvalidConfig, c.FairnessThreshold)
	}
	if c.SlightMultiple < 1 {
		return fmt.Errorf("%w: slight_multiple %.2f must be at least 1", ErrInvalidConfig, c.SlightMultiple)
	}
	if c.HeavyMultiple < c.SlightMultiple {
		return fmt.Errorf("%w: heavy_multiple %.2f must not be below slight_multiple %.2f", ErrInvalidConfig, c.HeavyMultiple, c.SlightMultiple)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: at least one scoring category is required", ErrInvalidConfig)
	}
	for name, cw := range c.Categories {
		if cw.Weight <= 0 {
			return fmt.Errorf("%w: category %s weight %.3f must be positive", ErrInvalidConfig, name, cw.Weight)
		}
		if cw.Baseline <= 0 {
			return fmt.Errorf("%w: category %s baseline %.3f must be positive", ErrInvalidConfig, name, cw.Baseline)
		}
	}
	for pos, mult := range c.Scarcity {
		if mult <= 0 {
			return fmt.Errorf("%w: scarcity multiplier for %s must be positive", ErrInvalidConfig, pos)
		}
	}
	ac := c.AgeCurve
	if ac.PrimeStart <= 0 || ac.PeakAge < ac.PrimeStart {
		return fmt.Errorf("%w: age curve prime %d..%d is not a valid range", ErrInvalidConfig, ac.PrimeStart, ac.PeakAge)
	}
	if ac.Floor <= 0 || ac.Ceiling < 1 || ac.Floor > ac.Ceiling {
		return fmt.Errorf("%w: age curve bounds floor %.2f ceiling %.2f", ErrInvalidConfig, ac.Floor, ac.Ceiling)
	}
	if ac.YouthBonusPerYear < 0 || ac.DeclinePerYear < 0 {
		return fmt.Errorf("%w: age curve slopes must not be negative", ErrInvalidConfig)
	}
	if c.MaxBundleSize < 1 {
		return fmt.Errorf("%w: max_bundle_size must be at least 1", ErrInvalidConfig)
	}
	if c.MaxCandidates < 1 || c.MaxProposals < 1 {
		return fmt.Errorf("%w: suggestion search bounds must be positive", ErrInvalidConfig)
	}
	if c.MaxRankingsLimit < 1 || c.MaxSuggestions < 1 {
		return fmt.Errorf("%w: response limits must be positive", ErrInvalidConfig)
	}
	return nil
}
