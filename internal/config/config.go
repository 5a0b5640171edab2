package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: PORTFOLIO_ANALYTICS__DB_PATH -> analytics.db_path.
const EnvPrefix = "PORTFOLIO_"

type Config struct {
	Port      int             `koanf:"port"`
	Mode      string          `koanf:"mode"`
	Content   ContentConfig   `koanf:"content"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Admin     AdminConfig     `koanf:"admin"`
}

type ContentConfig struct {
	// Path to a YAML file replacing the built-in copy. Empty uses the built-in.
	Path string `koanf:"path"`
}

type AnalyticsConfig struct {
	Enabled       bool   `koanf:"enabled"`
	DBPath        string `koanf:"db_path"`
	RetentionDays int    `koanf:"retention_days"`
}

type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Mode: "debug",
		Analytics: AnalyticsConfig{
			Enabled:       true,
			DBPath:        "data/portfolio.db",
			RetentionDays: 365,
		},
		Admin: AdminConfig{
			Username: DefaultAdminUsername,
			Password: DefaultAdminPassword,
		},
	}
}

// Load reads configuration from the given YAML file if it exists, then
// overlays PORTFOLIO_* variables and finally PORT.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	return cfg, nil
}

var validModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if c.Analytics.Enabled {
		if c.Analytics.DBPath == "" {
			return fmt.Errorf("analytics.db_path is required when analytics is enabled")
		}
		if c.Analytics.RetentionDays < 1 {
			return fmt.Errorf("analytics.retention_days must be positive, got %d", c.Analytics.RetentionDays)
		}
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("admin.username and admin.password must not be empty")
	}
	// Admin routes only exist alongside analytics.
	if c.Mode == "release" && c.Analytics.Enabled && c.UsesDefaultAdmin() {
		return fmt.Errorf("default admin credentials are not allowed in release mode: set admin.username and admin.password")
	}
	return nil
}

// UsesDefaultAdmin reports whether the admin credentials were left unset.
func (c *Config) UsesDefaultAdmin() bool {
	return c.Admin.Username == DefaultAdminUsername || c.Admin.Password == DefaultAdminPassword
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
