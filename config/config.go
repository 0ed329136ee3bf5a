// Package config loads settings for the budget CLI and HTTP server.
//
// Sources, lowest to highest precedence: built-in defaults, an optional
// budget.yaml (or the file given with --config), a .env file, and BUDGET_*
// environment variables (BUDGET_STORAGE_FILE, BUDGET_SERVER_PORT, ...).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Defaults shared with the CLI flags that override them.
const (
	DefaultFile       = "budget.json"
	DefaultSQLitePath = "budget.db"
	DefaultLogLevel   = "info"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	File       string `mapstructure:"file"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AutoSave       bool          `mapstructure:"auto_save"`
	SaveInterval   time.Duration `mapstructure:"save_interval"` // 0 disables periodic saves
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults, env binding and search paths set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.file", DefaultFile)
	v.SetDefault("storage.sqlite_path", DefaultSQLitePath)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.auto_save", true)
	v.SetDefault("server.save_interval", 0)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", "text")

	v.SetConfigName("budget")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".budget"))
	}

	v.SetEnvPrefix("BUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration. path may be empty, in which case the search paths
// are used and a missing config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	return &cfg, nil
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	switch c.Storage.Backend {
	case BackendJSON:
		if c.Storage.File == "" {
			errs = append(errs, "storage.file cannot be empty when using the json backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, "storage.sqlite_path cannot be empty when using the sqlite backend")
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("invalid storage backend %q: must be one of %v",
			c.Storage.Backend, []string{BackendJSON, BackendSQLite, BackendMemory}))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}

	if c.Server.SaveInterval < 0 {
		errs = append(errs, fmt.Sprintf("invalid save_interval %s: must not be negative", c.Server.SaveInterval))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format %q: must be text or json", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
