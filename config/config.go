// Package config provides YAML-loadable configuration for all reflow
// engines. Every threshold the pipeline uses is an explicit configuration
// value; files only need to mention the settings they change, everything
// else keeps its default.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/reflow/fitting"
	"github.com/tsawler/reflow/layout"
	"github.com/tsawler/reflow/reconstruct"
)

// Config aggregates the configuration of every engine in the pipeline.
type Config struct {
	// Analyzer configures per-page layout analysis
	Analyzer layout.AnalyzerConfig `yaml:"analyzer"`

	// Fitting configures the text fitting engine
	Fitting fitting.Config `yaml:"fitting"`

	// Conflict configures conflict detection and resolution
	Conflict fitting.ConflictConfig `yaml:"conflict"`
}

// Default returns the configuration every engine uses out of the box.
func Default() Config {
	return Config{
		Analyzer: layout.DefaultAnalyzerConfig(),
		Fitting:  fitting.DefaultConfig(),
		Conflict: fitting.DefaultConflictConfig(),
	}
}

// Load reads YAML configuration from r, overlaying it on the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}

	return cfg, nil
}

// LoadFile reads YAML configuration from a file, overlaying it on the
// defaults.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Default(), fmt.Errorf("opening configuration file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// EngineConfig converts the configuration into the form the reconstruction
// engine takes.
func (c Config) EngineConfig() reconstruct.EngineConfig {
	return reconstruct.EngineConfig{
		Fitting:  c.Fitting,
		Conflict: c.Conflict,
	}
}
