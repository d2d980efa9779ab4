package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App AppConfig
	API APIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.App.ensureConfigDir(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel  string `envconfig:"GURKERL_LOG_LEVEL" default:"info"`
	ConfigDir string `envconfig:"GURKERL_CONFIG_DIR"`
}

func (a *AppConfig) ensureConfigDir() error {
	if strings.TrimSpace(a.ConfigDir) != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	a.ConfigDir = filepath.Join(home, ".config", "gurkerlcli")
	return nil
}

type APIConfig struct {
	BaseURL   string        `envconfig:"GURKERL_BASE_URL" default:"https://www.gurkerl.at"`
	Timeout   time.Duration `envconfig:"GURKERL_TIMEOUT" default:"30s"`
	UserAgent string        `envconfig:"GURKERL_USER_AGENT" default:"gurkerlcli/0.1.0"`
}
