// Package config loads scraper settings: defaults, then an optional YAML
// file named by HOME_SCRAPER_CONFIG, then environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BielosX/wombat/home-scraper/src/home"
)

const PathEnv = "HOME_SCRAPER_CONFIG"

type Config struct {
	APIBase      string        `yaml:"api_base"`
	ResourceBase string        `yaml:"resource_base"`
	Soft         string        `yaml:"soft"`
	Lang         string        `yaml:"lang"`
	Locale       string        `yaml:"locale"`
	UserAgent    string        `yaml:"user_agent"`
	Timeout      time.Duration `yaml:"timeout"`

	DataDir        string `yaml:"data_dir"`
	AssetDir       string `yaml:"asset_dir"`
	AssetSourceDir string `yaml:"asset_source_dir"`

	// Optional sinks; empty disables them.
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	BucketPrefix string `yaml:"bucket_prefix"`
	RankingTable string `yaml:"ranking_table"`
}

func Default() Config {
	return Config{
		APIBase:        home.DefaultAPIBase,
		ResourceBase:   home.DefaultResourceBase,
		Soft:           "Sc",
		Lang:           "ja",
		Locale:         "JPN",
		UserAgent:      home.DefaultUserAgent,
		Timeout:        30 * time.Second,
		DataDir:        "data",
		AssetDir:       "data/assets",
		AssetSourceDir: "tmp/pokemon_home_sv/asset",
	}
}

func (c Config) HomeOptions() home.Options {
	return home.Options{
		APIBase:      c.APIBase,
		ResourceBase: c.ResourceBase,
		Soft:         c.Soft,
		Lang:         c.Lang,
		UserAgent:    c.UserAgent,
		Timeout:      c.Timeout,
	}
}

func (c Config) UsesAWS() bool {
	return c.Bucket != "" || c.RankingTable != ""
}

// Load reads the file at path when path is non-empty and applies
// environment overrides on top.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func FromEnv() (Config, error) {
	return Load(os.Getenv(PathEnv))
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	overrides := []struct {
		key    string
		target *string
	}{
		{"HOME_API_BASE", &cfg.APIBase},
		{"HOME_RESOURCE_BASE", &cfg.ResourceBase},
		{"HOME_SOFT", &cfg.Soft},
		{"HOME_LANG", &cfg.Lang},
		{"HOME_LOCALE", &cfg.Locale},
		{"HOME_USER_AGENT", &cfg.UserAgent},
		{"DATA_DIR", &cfg.DataDir},
		{"ASSET_DIR", &cfg.AssetDir},
		{"ASSET_SOURCE_DIR", &cfg.AssetSourceDir},
		{"AWS_REGION", &cfg.Region},
		{"BUCKET_NAME", &cfg.Bucket},
		{"BUCKET_PREFIX", &cfg.BucketPrefix},
		{"RANKING_TABLE_NAME", &cfg.RankingTable},
	}
	for _, s := range overrides {
		if v := getenv(s.key); v != "" {
			*s.target = v
		}
	}
	if v := getenv("HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HTTP_TIMEOUT: %w", err)
		}
		cfg.Timeout = timeout
	}
	return nil
}
