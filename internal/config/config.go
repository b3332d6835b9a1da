package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    Server    `yaml:"server" json:"server"`
	SeededRNG SeededRNG `yaml:"seeded_rng" json:"seeded_rng"`
	Balance   Balance   `yaml:"balance" json:"balance"`
}

type Server struct {
	Port    int    `yaml:"port" json:"port" env:"GLOAM_PORT"`
	DevMode bool   `yaml:"dev_mode" json:"dev_mode" env:"GLOAM_DEV"`
	LogTag  string `yaml:"log_tag" json:"log_tag" env:"GLOAM_LOG_TAG"`
}

type SeededRNG struct {
	Enabled bool  `yaml:"enabled" json:"enabled" env:"GLOAM_SEEDED_RNG"`
	Seed    int64 `yaml:"seed" json:"seed" env:"GLOAM_SEED"`
}

// Load reads a yaml config file over the defaults. A missing path returns
// the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server:  Server{Port: 42070, LogTag: "gloam"},
		Balance: DefaultBalance(),
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Balance.clamp()
	return cfg, nil
}
