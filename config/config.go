package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bent101/wordle-entropy/solver"
)

type Config struct {
	DataDir      string            `yaml:"data_dir"`
	SampleSize   int               `yaml:"sample_size"`
	Seed         uint64            `yaml:"seed"` // 0 seeds from the clock
	HistoryDB    string            `yaml:"history_db"`
	Addr         string            `yaml:"addr"`
	StartersFile string            `yaml:"starters_file"`
	Fallback     solver.ScoredWord `yaml:"fallback"`
}

func Default() Config {
	return Config{
		DataDir:    "data",
		SampleSize: solver.DefaultSampleSize,
		Addr:       ":8080",
		Fallback:   solver.ScoredWord{Word: "CRANE", Entropy: 5.72},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
// The result is not validated so callers can apply overrides first.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Fallback.Word = solver.NormalizeWord(cfg.Fallback.Word)
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must be set")
	}
	if c.SampleSize < 1 {
		return fmt.Errorf("sample_size must be >= 1")
	}
	if c.Fallback.Word == "" {
		return fmt.Errorf("fallback word must be set")
	}
	if c.Fallback.Entropy < 0 {
		return fmt.Errorf("fallback entropy must be >= 0")
	}
	return nil
}

// RankerOptions turns the config into solver options.
func (c Config) RankerOptions() ([]solver.Option, error) {
	opts := []solver.Option{solver.WithSampleSize(c.SampleSize)}
	if c.Seed != 0 {
		opts = append(opts, solver.WithSeed(c.Seed))
	}
	if c.StartersFile != "" {
		starters, err := solver.LoadStarters(c.StartersFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, solver.WithStarters(starters))
	}
	return opts, nil
}
