// SPDX-License-Identifier: MIT

// Package config loads the coop command-line configuration from YAML and turns
// it into engine options.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/coop/matrix"
)

// Config represents the coop CLI configuration.
type Config struct {
	ParallelThreshold int    `yaml:"parallel_threshold"`      // m*n above which loops run in parallel
	Workers           int    `yaml:"workers,omitempty"`       // worker count; 0 = GOMAXPROCS
	ScratchLimit      int    `yaml:"scratch_limit,omitempty"` // per-buffer cap in float64 values; 0 = unbounded
	Precision         int    `yaml:"precision"`               // digits after the decimal point in CSV output
	Header            bool   `yaml:"header"`                  // first input row holds column names
	Delimiter         string `yaml:"delimiter,omitempty"`     // single-character field separator
}

// Validation errors.
var (
	ErrNegativeThreshold = errors.New("config: parallel_threshold must be >= 0")
	ErrNegativeWorkers   = errors.New("config: workers must be >= 0")
	ErrNegativeScratch   = errors.New("config: scratch_limit must be >= 0")
	ErrBadPrecision      = errors.New("config: precision must be in [0, 17]")
	ErrBadDelimiter      = errors.New("config: delimiter must be a single character")
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ParallelThreshold: matrix.DefaultParallelThreshold,
		Workers:           matrix.DefaultWorkers,
		ScratchLimit:      matrix.DefaultScratchLimit,
		Precision:         6,
		Header:            false,
		Delimiter:         ",",
	}
}

// Load reads the YAML file at path on top of Default. An empty path returns the
// defaults. ${VAR} references in the file are expanded from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err = Parse(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML into cfg, overriding only the keys present, and validates
// the result.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Validate checks the ranges of every field.
func (c *Config) Validate() error {
	switch {
	case c.ParallelThreshold < 0:
		return ErrNegativeThreshold
	case c.Workers < 0:
		return ErrNegativeWorkers
	case c.ScratchLimit < 0:
		return ErrNegativeScratch
	case c.Precision < 0 || c.Precision > 17:
		return ErrBadPrecision
	case len([]rune(c.Delimiter)) != 1:
		return ErrBadDelimiter
	}

	return nil
}

// Comma returns the delimiter as a rune for encoding/csv.
func (c *Config) Comma() rune {
	return []rune(c.Delimiter)[0]
}

// Options translates the configuration into engine options.
func (c *Config) Options() []matrix.Option {
	opts := []matrix.Option{
		matrix.WithParallelThreshold(c.ParallelThreshold),
		matrix.WithWorkers(c.Workers),
	}
	if c.ScratchLimit > 0 {
		opts = append(opts, matrix.WithScratchLimit(c.ScratchLimit))
	}

	return opts
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
