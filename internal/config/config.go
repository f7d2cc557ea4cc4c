package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/STCADSVERTISING/shopee-aff-web/internal/domain"
)

// Load reads the config document from path (falling back to an affiliate-
// disabled default when the file is missing or unreadable) and layers
// environment overrides on top. The core only ever sees the merged value.
func Load(path string) domain.Config {
	cfg := domain.Config{}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			slog.Warn("config file unreadable, using defaults", "path", path, "err", err)
			cfg = domain.Config{}
		}
	}
	return applyEnvOverrides(cfg)
}

// Save writes the config document back to path as indented JSON.
func Save(path string, cfg domain.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func applyEnvOverrides(cfg domain.Config) domain.Config {
	if v := os.Getenv("AFF_ENABLED"); v != "" {
		cfg.Affiliate.Enabled = isTruthy(v)
	}
	if v := os.Getenv("AFF_ENDPOINT"); v != "" {
		cfg.Affiliate.Endpoint = v
	}
	if v := os.Getenv("AFF_APP_ID"); v != "" {
		cfg.Affiliate.AppID = v
	}
	if v := os.Getenv("AFF_SECRET"); v != "" {
		cfg.Affiliate.Secret = v
	}
	return cfg
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
