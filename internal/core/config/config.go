package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application config.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Datasets DatasetsConfig `koanf:"datasets"`
	Query    QueryConfig    `koanf:"query"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatasetsConfig struct {
	SourceType    string `koanf:"source_type"` // memory | filesystem
	Path          string `koanf:"path"`
	CacheCapacity int    `koanf:"cache_capacity"`
}

// QueryConfig holds the defaults applied when a query leaves them unset.
type QueryConfig struct {
	DefaultConnector string `koanf:"default_connector"`
	DefaultScale     int32  `koanf:"default_scale"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	switch c.Datasets.SourceType {
	case "memory":
	case "filesystem":
		if strings.TrimSpace(c.Datasets.Path) == "" {
			return fmt.Errorf("datasets.path is required for the filesystem source")
		}
		info, err := os.Stat(c.Datasets.Path)
		if err != nil {
			return fmt.Errorf("datasets.path %q is not accessible: %w", c.Datasets.Path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("datasets.path %q is not a directory", c.Datasets.Path)
		}
	default:
		return fmt.Errorf("unsupported datasets.source_type %q (must be memory or filesystem)", c.Datasets.SourceType)
	}
	if c.Datasets.CacheCapacity <= 0 {
		return fmt.Errorf("datasets.cache_capacity must be > 0")
	}

	if c.Query.DefaultScale < 0 {
		return fmt.Errorf("query.default_scale must be >= 0")
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and SIFT_ env vars,
// then validates it. Nested keys use a double underscore in env vars, e.g.
// SIFT_SERVER__PORT.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.max_body_size_mb": 4,
		"server.mode":             "release",
		"datasets.source_type":    "memory",
		"datasets.path":           "./datasets",
		"datasets.cache_capacity": 64,
		"query.default_connector": ",",
		"query.default_scale":     2,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("SIFT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SIFT_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
