package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type ServerConfig struct {
	Addr string `yaml:"addr"`
	Mode string `yaml:"mode"` // gin mode: release, debug or test
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StoreConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`      // sqlite file path or mongo connection string
	Database string `yaml:"database"` // mongo database name
	URL      string `yaml:"url"`      // base url of the rest backend
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
}

type FeedbackConfig struct {
	Timeout string `yaml:"timeout"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Feedback FeedbackConfig `yaml:"feedback"`
}

func (s StoreConfig) TimeoutDuration() time.Duration {
	return parseDuration(s.Timeout, 10*time.Second)
}

func (f FeedbackConfig) TimeoutDuration() time.Duration {
	return parseDuration(f.Timeout, 5*time.Second)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path on top of the embedded defaults and applies
// VILLAGE_* environment overrides. An empty path uses the defaults only.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"VILLAGE_ADDR":          &cfg.Server.Addr,
		"VILLAGE_LOG_LEVEL":     &cfg.Log.Level,
		"VILLAGE_STORE_DRIVER":  &cfg.Store.Driver,
		"VILLAGE_STORE_DSN":     &cfg.Store.DSN,
		"VILLAGE_STORE_URL":     &cfg.Store.URL,
		"VILLAGE_STORE_API_KEY": &cfg.Store.APIKey,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch cfg.Server.Mode {
	case "", "release", "debug", "test":
	default:
		return fmt.Errorf("server.mode %q is not one of release, debug, test", cfg.Server.Mode)
	}

	switch cfg.Store.Driver {
	case "sqlite":
		if cfg.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the sqlite driver")
		}
	case "mongo":
		if cfg.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the mongo driver")
		}
		if cfg.Store.Database == "" {
			return fmt.Errorf("store.database is required for the mongo driver")
		}
	case "rest":
		u, err := url.Parse(cfg.Store.URL)
		if err != nil {
			return fmt.Errorf("store.url: invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("store.url scheme must be http or https, got %q", u.Scheme)
		}
	case "none":
	default:
		return fmt.Errorf("unknown store.driver %q (valid: sqlite, mongo, rest, none)", cfg.Store.Driver)
	}
	return nil
}
