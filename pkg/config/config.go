package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matt-steen/kanban-board/pkg/store"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. KANBAN_FETCH_ENDPOINT.
const EnvPrefix = "KANBAN"

// Config is the complete application configuration.
type Config struct {
	Fetch FetchConfig `mapstructure:"fetch"`
	DB    DBConfig    `mapstructure:"db"`
	Log   LogConfig   `mapstructure:"log"`
}

// FetchConfig controls the ticket fetch.
type FetchConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	// Timeout bounds the fetch; 0 disables the bound.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DBConfig locates the sqlite file holding the view state.
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the debug log. The terminal belongs to the board, so logs go to a file.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Default returns a Config with default values. Files live under dir.
func Default(dir string) *Config {
	return &Config{
		Fetch: FetchConfig{
			Endpoint: store.DefaultEndpoint,
			Timeout:  30 * time.Second,
		},
		DB: DBConfig{
			Path: filepath.Join(dir, "state.sqlite"),
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "debug.log"),
			Level: "info",
		},
	}
}

// Dir returns the directory for the config file, database, and log.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}

	return filepath.Join(base, "kanban-board")
}

// Flags returns the command-line flags understood by Load.
func Flags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("kanban-board", pflag.ContinueOnError)

	flags.String("config", "", "path to a config file (default "+filepath.Join(Dir(), "config.yaml")+")")
	flags.String("endpoint", "", "URL serving the tickets and users")
	flags.Duration("timeout", 0, "fetch timeout (0 for none)")
	flags.String("db", "", "path to the sqlite file holding the view state")
	flags.String("log-file", "", "path to the debug log")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	return flags
}

// Load builds the configuration from defaults, the config file, KANBAN_* environment variables, and
// the given flags, in increasing order of precedence. A missing default config file is not an error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	dir := Dir()
	defaults := Default(dir)

	v := viper.New()

	v.SetDefault("fetch.endpoint", defaults.Fetch.Endpoint)
	v.SetDefault("fetch.timeout", defaults.Fetch.Timeout)
	v.SetDefault("db.path", defaults.DB.Path)
	v.SetDefault("log.path", defaults.Log.Path)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindings := map[string]string{
			"fetch.endpoint": "endpoint",
			"fetch.timeout":  "timeout",
			"db.path":        "db",
			"log.path":       "log-file",
			"log.level":      "log-level",
		}

		for key, name := range bindings {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if c.Fetch.Endpoint == "" {
		return errors.New("fetch.endpoint must not be empty")
	}

	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout)
	}

	if c.DB.Path == "" {
		return errors.New("db.path must not be empty")
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}

	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}
