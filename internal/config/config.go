// Package config loads server configuration from an optional yaml file
// and ENERGYDASH_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"energydash/internal/engine"
)

// Config file names looked up in the working directory.
const (
	FileName    = "energydash.yaml"
	FileNameAlt = "energydash.yml"
)

const envPrefix = "ENERGYDASH_"

// Default configuration values.
const (
	DefaultPort          = 8080
	DefaultDataPath      = "World Energy Consumption.csv"
	DefaultFillPolicy    = string(engine.FillZero)
	DefaultGrowthFormula = string(engine.GrowthEndpoint)
	DefaultTopN          = engine.DefaultTopN
)

// Config holds the dashboard server settings.
type Config struct {
	Port          int    `koanf:"port"`
	DataPath      string `koanf:"data_path"`
	Watch         bool   `koanf:"watch"`
	FillPolicy    string `koanf:"fill_policy"`
	GrowthFormula string `koanf:"growth_formula"`
	TopN          int    `koanf:"top_n"`
}

// Load reads configuration from dir. Precedence: defaults, then the
// config file (if present), then environment variables. A missing
// config file is not an error.
func Load(dir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"port":           DefaultPort,
		"data_path":      DefaultDataPath,
		"watch":          false,
		"fill_policy":    DefaultFillPolicy,
		"growth_formula": DefaultGrowthFormula,
		"top_n":          DefaultTopN,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(dir); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// Transform: ENERGYDASH_DATA_PATH -> data_path
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults backfills zero or unrecognized values.
func (c *Config) applyDefaults() {
	if c.Port <= 0 {
		c.Port = DefaultPort
	}
	if c.DataPath == "" {
		c.DataPath = DefaultDataPath
	}
	if c.TopN <= 0 {
		c.TopN = DefaultTopN
	}
	if c.FillPolicy != string(engine.FillZero) && c.FillPolicy != string(engine.FillForward) {
		c.FillPolicy = DefaultFillPolicy
	}
	if c.GrowthFormula != string(engine.GrowthEndpoint) && c.GrowthFormula != string(engine.GrowthCompound) {
		c.GrowthFormula = DefaultGrowthFormula
	}
}

// Fill returns the configured missing-value fill policy.
func (c *Config) Fill() engine.FillPolicy {
	return engine.FillPolicy(c.FillPolicy)
}

// Growth returns the configured growth-rate formula.
func (c *Config) Growth() engine.GrowthFormula {
	return engine.GrowthFormula(c.GrowthFormula)
}

func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, FileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}
