package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to data/).
	userConfigFile = ".pbconfig.yaml"

	// envFile holds optional PB_* overrides.
	envFile = ".env"

	// Default configuration values
	DefaultPageSize      = 3
	DefaultConfirmRemove = true
	DefaultLogLevel      = ""
)

// Environment variables that override the config file.
const (
	EnvDataFile = "PB_DATA_FILE"
	EnvPageSize = "PB_PAGE_SIZE"
	EnvLogLevel = "PB_LOG_LEVEL"
)

// Config represents user configuration from .pbconfig.yaml.
// This file is user-managed and never written by pb.
type Config struct {
	// DataFile is the path of the contacts document.
	DataFile string `yaml:"data_file"`

	// PageSize is the number of contacts shown per page.
	PageSize int `yaml:"page_size"`

	// ConfirmRemove asks before `pb remove` deletes a contact.
	ConfirmRemove bool `yaml:"confirm_remove"`

	// LogLevel is the zap level for diagnostics on stderr. Empty disables logging.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DataFile:      DefaultDataFile,
		PageSize:      DefaultPageSize,
		ConfirmRemove: DefaultConfirmRemove,
		LogLevel:      DefaultLogLevel,
	}
}

// LoadConfig loads .pbconfig.yaml from dir if it exists, otherwise returns defaults.
// Partial config files are merged with defaults.
func LoadConfig(dir string) (*Config, error) {
	configPath := ConfigPath(dir)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", userConfigFile, err)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file in dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, userConfigFile)
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	return nil
}

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc over the process environment, falling back
// to variables from a .env file in dir. Non-empty environment variables
// take precedence over the file. A missing .env is not an error.
func EnvLookup(dir string) (LookupFunc, error) {
	fileVars := map[string]string{}

	path := filepath.Join(dir, envFile)
	if _, err := os.Stat(path); err == nil {
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", envFile, err)
		}
		fileVars = vars
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

// ApplyEnv overrides config values from PB_* environment variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvDataFile); ok && v != "" {
		c.DataFile = v
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPageSize, v, err)
		}
		c.PageSize = n
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	return c.Validate()
}
