// Package config loads tada settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/idilsaglam/todo/internal/model"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const configFileName = "config.toml"

type Config struct {
	Env string    `toml:"env" env:"TADA_ENV" env-default:"prod"`
	API APIConfig `toml:"api"`
	Log LogConfig `toml:"log"`
	UI  UIConfig  `toml:"ui"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url" env:"TADA_API_URL" env-default:"https://mate.academy/students-api"`
	UserID  int    `toml:"user_id" env:"TADA_USER_ID" env-default:"6"`
}

type LogConfig struct {
	Level string `toml:"level" env:"TADA_LOG_LEVEL" env-default:"info"`
	// File is where logs go. Empty disables logging so the TUI screen stays clean.
	File string `toml:"file" env:"TADA_LOG_FILE"`
}

type UIConfig struct {
	Theme        string        `toml:"theme" env:"TADA_THEME" env-default:"classic"`
	Filter       string        `toml:"filter" env:"TADA_FILTER" env-default:"all"`
	ErrorTimeout time.Duration `toml:"error_timeout" env:"TADA_ERROR_TIMEOUT" env-default:"3s"`
}

// Dir is ~/.tada, shared with the credentials file.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// DefaultPath returns ~/.tada/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads path (a missing file is fine), then applies environment
// overrides and defaults for anything still unset. Callers apply their own
// overrides and then call Validate.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url: %q", c.API.BaseURL)
	}
	if c.API.UserID <= 0 {
		return fmt.Errorf("user id must be positive, got %d", c.API.UserID)
	}
	if _, err := model.ParseFilter(c.UI.Filter); err != nil {
		return err
	}
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}
	if c.UI.ErrorTimeout < 0 {
		return fmt.Errorf("error timeout must not be negative")
	}
	return nil
}

// Filter is the starting view filter. Validate has already checked it.
func (c *Config) Filter() model.FilterStatus {
	f, _ := model.ParseFilter(c.UI.Filter)
	return f
}
