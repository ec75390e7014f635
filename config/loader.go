package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads configuration from a JSON or YAML document,
// selected by file extension (JSON by default), on top of the defaults.
// Absent keys keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.DomainRangeRestrictionSeverity != "" {
		severity, err := ParseSeverity(string(cfg.DomainRangeRestrictionSeverity))
		if err != nil {
			return nil, err
		}
		cfg.DomainRangeRestrictionSeverity = severity
	}
	return cfg, nil
}
