// Package config loads settings from ~/.config/claimdeck/config.yaml with
// CLAIMDECK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds everything the commands need to run.
type Config struct {
	APIToken    string `mapstructure:"api_token" validate:"required"`
	APIEndpoint string `mapstructure:"api_endpoint" validate:"omitempty,url"`
	BoardID     string `mapstructure:"board_id"`
	LogFile     string `mapstructure:"log_file"`
	CacheFile   string `mapstructure:"cache_file"`
}

// ErrMissingToken is returned when no API token is configured anywhere.
var ErrMissingToken = errors.New(
	"no api token configured: set api_token in the config file (claimdeck config init) or CLAIMDECK_API_TOKEN")

// Dir returns the configuration directory, ~/.config/claimdeck.
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "claimdeck"), nil
}

// Path returns the config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path (or the default location when empty),
// applies environment overrides and validates the result. A missing file is
// fine as long as the token arrives via environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMDECK")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// AutomaticEnv only resolves keys viper has seen, so bind explicitly.
	for _, key := range []string{"api_token", "api_endpoint", "board_id", "log_file", "cache_file"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIToken == "" {
		return nil, ErrMissingToken
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, "claimdeck.log")
	}
	if c.CacheFile == "" {
		c.CacheFile = filepath.Join(dir, "cache.db")
	}
	return nil
}

// Init writes a template config file at the default location. It refuses to
// overwrite an existing file.
func Init() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	template := `# claimdeck configuration
api_token: ""
# api_endpoint: https://api.monday.com/v2
# board_id: ""
# log_file: ~/.config/claimdeck/claimdeck.log
# cache_file: ~/.config/claimdeck/cache.db
`
	if err := os.WriteFile(path, []byte(template), 0o600); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}
