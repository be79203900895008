package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	Navigator NavigatorConfig `mapstructure:"navigator"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`
}

// SourceConfig describes where the category tree comes from
type SourceConfig struct {
	URL                  string   `mapstructure:"url"`
	File                 string   `mapstructure:"file"`
	Format               string   `mapstructure:"format"` // json or html
	TreeSelector         string   `mapstructure:"tree_selector"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	CircuitBreakerDelay  int      `mapstructure:"circuit_breaker_delay"`
	Proxies              []string `mapstructure:"proxies"`
}

// NavigatorConfig tunes the cascading menu
type NavigatorConfig struct {
	MaxVisibleLevels int `mapstructure:"max_visible_levels"`
	SearchLimit      int `mapstructure:"search_limit"`
	SuggestionLimit  int `mapstructure:"suggestion_limit"`
}

// DatabaseConfig holds database configuration for saved selections
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN renders the pgx connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	Database     int    `mapstructure:"database"`
	StreamPrefix string `mapstructure:"stream_prefix"`
	StreamMaxLen int64  `mapstructure:"stream_max_len"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig identifies who the host saves selections for
type SessionConfig struct {
	Owner string `mapstructure:"owner"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// Load reads configuration from path, or from config.yaml in the current
// directory when path is empty, with environment variable overrides.
// A missing default config.yaml is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("NAVIGATOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the navigator cannot work with
func (c *Config) Validate() error {
	switch c.Source.Format {
	case "json", "html":
	default:
		return fmt.Errorf("unsupported source format %q (want json or html)", c.Source.Format)
	}
	if c.Navigator.MaxVisibleLevels < 1 {
		return fmt.Errorf("navigator.max_visible_levels must be >= 1 (got %d)", c.Navigator.MaxVisibleLevels)
	}
	if c.Navigator.SearchLimit < 1 {
		return fmt.Errorf("navigator.search_limit must be >= 1 (got %d)", c.Navigator.SearchLimit)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.url", "")
	v.SetDefault("source.file", "")
	v.SetDefault("source.format", "json")
	v.SetDefault("source.tree_selector", "ul.category-tree")
	v.SetDefault("source.timeout", 30)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.max_requests_per_second", 5)
	v.SetDefault("source.circuit_breaker_delay", 300)
	v.SetDefault("source.proxies", []string{})

	v.SetDefault("navigator.max_visible_levels", 4)
	v.SetDefault("navigator.search_limit", 5)
	v.SetDefault("navigator.suggestion_limit", 3)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "catalog")
	v.SetDefault("database.user", "catalog_user")
	v.SetDefault("database.password", "catalog_pass")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.stream_prefix", "navigator:stream:")
	v.SetDefault("redis.stream_max_len", 10000)

	v.SetDefault("session.owner", "default")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
