package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "24h" decode.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the application configuration, loaded from a YAML file.
// Every field has a working default so a config file is optional.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Content struct {
		// Dir is the directory holding scenario JSON files.
		Dir string `yaml:"dir"`
	} `yaml:"content"`

	Store struct {
		// Backend selects the session store: memory, redis or postgres.
		Backend string `yaml:"backend"`

		// RedactPatterns are regular expressions masked out of persisted
		// worker text.
		RedactPatterns []string `yaml:"redact_patterns"`

		Redis struct {
			Addr     string   `yaml:"addr"`
			Password string   `yaml:"password"`
			DB       int      `yaml:"db"`
			TTL      Duration `yaml:"ttl"`
		} `yaml:"redis"`

		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
	} `yaml:"store"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8000"
	cfg.Content.Dir = "data/scenarios"
	cfg.Store.Backend = "memory"
	cfg.Store.Redis.Addr = "localhost:6379"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads a YAML config file over the defaults. A missing file is not
// an error; an unreadable or malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	switch cfg.Store.Backend {
	case "memory", "redis", "postgres":
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	for _, p := range cfg.Store.RedactPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
	}

	return cfg, nil
}
