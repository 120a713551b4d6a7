// Package config provides configuration file support for Nexa.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nexa-assets/nexa/pkg/fsutil"
)

// FileName is the config file name inside the data directory.
const FileName = "config.yaml"

// DataDirEnv overrides the default data directory.
const DataDirEnv = "NEXA_DATA_DIR"

// Config represents the Nexa configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Assist  AssistConfig  `yaml:"assist"`
	Reports ReportsConfig `yaml:"reports"`
	Journal JournalConfig `yaml:"journal"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // file, memory, redis
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text
}

// AssistConfig configures the description generator.
type AssistConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

// ReportsConfig tunes report windows.
type ReportsConfig struct {
	MaintenanceWindowDays int `yaml:"maintenance_window_days"`
}

// JournalConfig toggles the hash-chained audit journal.
type JournalConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "file",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "nexa:",
			},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
		Assist: AssistConfig{
			Model:   "gemini-2.5-flash",
			Timeout: "30s",
		},
		Reports: ReportsConfig{
			MaintenanceWindowDays: 90,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
	}
}

// AssistTimeout parses Assist.Timeout, falling back to 30s.
func (c *Config) AssistTimeout() time.Duration {
	d, err := time.ParseDuration(c.Assist.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// MaintenanceWindow returns the report horizon in days, never below zero.
func (c *Config) MaintenanceWindow() int {
	if c.Reports.MaintenanceWindowDays < 0 {
		return 0
	}
	return c.Reports.MaintenanceWindowDays
}

// ResolveDataDir picks the data directory: explicit flag, then $NEXA_DATA_DIR,
// then ~/.nexa.
func ResolveDataDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(DataDirEnv); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".nexa"), nil
}

// Path returns the config file location for a data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load loads configuration from <dataDir>/config.yaml.
// Returns default config if file doesn't exist.
func Load(dataDir string) (*Config, error) {
	return LoadFile(Path(dataDir))
}

// LoadFile loads configuration from an explicit path.
func LoadFile(cfgPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to <dataDir>/config.yaml.
func Save(dataDir string, cfg *Config) error {
	return SaveFile(Path(dataDir), cfg)
}

// SaveFile writes configuration to an explicit path.
func SaveFile(cfgPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.AtomicWrite(cfgPath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"storage.backend",
	"storage.redis.addr",
	"storage.redis.password",
	"storage.redis.db",
	"storage.redis.prefix",
	"logging.level",
	"logging.format",
	"assist.api_key",
	"assist.model",
	"assist.timeout",
	"reports.maintenance_window_days",
	"journal.enabled",
}

// Get returns the string form of a dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "storage.backend":
		return c.Storage.Backend, nil
	case "storage.redis.addr":
		return c.Storage.Redis.Addr, nil
	case "storage.redis.password":
		return c.Storage.Redis.Password, nil
	case "storage.redis.db":
		return strconv.Itoa(c.Storage.Redis.DB), nil
	case "storage.redis.prefix":
		return c.Storage.Redis.Prefix, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "assist.api_key":
		return c.Assist.APIKey, nil
	case "assist.model":
		return c.Assist.Model, nil
	case "assist.timeout":
		return c.Assist.Timeout, nil
	case "reports.maintenance_window_days":
		return strconv.Itoa(c.Reports.MaintenanceWindowDays), nil
	case "journal.enabled":
		return strconv.FormatBool(c.Journal.Enabled), nil
	}
	return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
}

// Set assigns a dotted key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "storage.backend":
		switch value {
		case "file", "memory", "redis":
			c.Storage.Backend = value
		default:
			return fmt.Errorf("invalid storage backend %q (must be file, memory or redis)", value)
		}
	case "storage.redis.addr":
		c.Storage.Redis.Addr = value
	case "storage.redis.password":
		c.Storage.Redis.Password = value
	case "storage.redis.db":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid redis db %q", value)
		}
		c.Storage.Redis.DB = n
	case "storage.redis.prefix":
		c.Storage.Redis.Prefix = value
	case "logging.level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "warning", "error":
			c.Logging.Level = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid log level %q", value)
		}
	case "logging.format":
		if value != "json" && value != "text" {
			return fmt.Errorf("invalid log format %q (must be json or text)", value)
		}
		c.Logging.Format = value
	case "assist.api_key":
		c.Assist.APIKey = value
	case "assist.model":
		c.Assist.Model = value
	case "assist.timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout %q", value)
		}
		c.Assist.Timeout = value
	case "reports.maintenance_window_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid window %q (must be a non-negative integer)", value)
		}
		c.Reports.MaintenanceWindowDays = n
	case "journal.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		c.Journal.Enabled = b
	default:
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}
