package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/a11y-audit/pkg/llm"
)

type Config struct {
	APIKey              string `yaml:"api_key"`
	Model               string `yaml:"model"`
	UseLiveVerdicts     bool   `yaml:"use_live_verdicts"`
	SkipNonWCAG         bool   `yaml:"skip_non_wcag"`
	NavigationTimeoutMs int    `yaml:"navigation_timeout_ms"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".a11y-audit")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Return default config
		return &Config{
			Model:               llm.DefaultModel,
			NavigationTimeoutMs: 30000,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}
	if cfg.NavigationTimeoutMs <= 0 {
		cfg.NavigationTimeoutMs = 30000
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600 permissions for security (api keys)
	return os.WriteFile(path, data, 0600)
}

// ResolveAPIKey prefers the stored key and falls back to the environment.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("GOOGLE_API_KEY")
}

func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}
