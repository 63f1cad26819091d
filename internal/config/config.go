// Package config loads server configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Renderer strategy names accepted in configuration.
const (
	RendererBrowser = "browser"
	RendererSlicer  = "slicer"
)

type Config struct {
	Server struct {
		Addr    string `yaml:"addr"`
		BaseURL string `yaml:"base_url"` // where the headless driver reaches the print route
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"` // empty runs the in-memory store
	} `yaml:"database"`
	Renderer struct {
		Strategy       string `yaml:"strategy"` // browser or slicer
		ChromeExecPath string `yaml:"chrome_exec_path"`
	} `yaml:"renderer"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
}

// Load reads the YAML file at path, falling back to defaults when the file is
// absent, then applies .env and environment-variable overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.Renderer.Strategy != RendererBrowser && cfg.Renderer.Strategy != RendererSlicer {
		return nil, fmt.Errorf("unknown renderer strategy %q", cfg.Renderer.Strategy)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SHARTNOMA_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SHARTNOMA_BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("SHARTNOMA_RENDERER"); v != "" {
		cfg.Renderer.Strategy = v
	}
	if v := os.Getenv("CHROME_EXEC_PATH"); v != "" {
		cfg.Renderer.ChromeExecPath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	if cfg.Renderer.Strategy == "" {
		cfg.Renderer.Strategy = RendererBrowser
	}
}
