package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
	Paths   PathsConfig   `toml:"paths"`
	Profile ProfileConfig `toml:"profile"`
}

type SimConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Duration time.Duration `toml:"duration"` // 0 = run until signal
	Seed     int64         `toml:"seed"`     // 0 = time-based
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

type PathsConfig struct {
	Templates string `toml:"templates"`
	Scenario  string `toml:"scenario"`
	Scripts   string `toml:"scripts"`
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem"
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Sim.TickRate <= 0 {
		return nil, fmt.Errorf("config %s: sim.tick_rate must be positive, got %s", path, cfg.Sim.TickRate)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9190",
		},
		Paths: PathsConfig{
			Templates: "data/yaml/projectile_list.yaml",
			Scenario:  "data/yaml/scenario_arena.yaml",
			Scripts:   "scripts",
		},
	}
}
