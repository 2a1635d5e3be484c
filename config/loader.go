package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from the
// given path, falling back to config.yml in the working directory.
func LoadAppConfig(path string) error {
	paths := []string{path, "config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg.Heuristics); err != nil {
		return err
	}
	if err := v.Struct(cfg.Output); err != nil {
		return err
	}
	// feeds are optional; if present validate each
	for _, f := range cfg.Feeds {
		if err := v.Struct(f); err != nil {
			return err
		}
	}
	Config = cfg
	applyDefaults(&Config)
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Heuristics.MaxUncorroboratedTail == 0 {
		cfg.Heuristics.MaxUncorroboratedTail = 1
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "csv"
	}
	for i := range cfg.Feeds {
		if cfg.Feeds[i].ReadIntervalMS == 0 {
			cfg.Feeds[i].ReadIntervalMS = 60000
		}
		if cfg.Feeds[i].TimeoutMS == 0 {
			cfg.Feeds[i].TimeoutMS = 15000
		}
	}
}

// SelectFeed chooses a feed by name, falling back to the first configured feed.
func SelectFeed(name string) (FeedConfig, bool) {
	if name != "" {
		for _, f := range Config.Feeds {
			if f.Name == name {
				return f, true
			}
		}
		return FeedConfig{}, false
	}
	if len(Config.Feeds) > 0 {
		return Config.Feeds[0], true
	}
	return FeedConfig{}, false
}
