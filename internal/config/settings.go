package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds application configuration for the CLI, the API server and the snapshot job.
type Settings struct {
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Cache    CacheSettings    `mapstructure:"cache"`
	Jobs     JobSettings      `mapstructure:"jobs"`
	Log      LogSettings      `mapstructure:"log"`
	Rates    RateSettings     `mapstructure:"rates"`
}

// ServerSettings holds HTTP listener settings. RateLimit is requests per minute per client.
type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	RateLimit       int           `mapstructure:"rate_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseSettings selects the snapshot store driver ("sqlite" or "postgres")
type DatabaseSettings struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// CacheSettings configures the result cache. An empty RedisAddr selects the in-memory cache.
type CacheSettings struct {
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// JobSettings configures the scheduled snapshot job
type JobSettings struct {
	SnapshotDir string `mapstructure:"snapshot_dir"`
	Schedule    string `mapstructure:"schedule"`
}

// LogSettings configures logrus
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateSettings points at an optional rate table override file
type RateSettings struct {
	File string `mapstructure:"file"`
}

// LoadSettings reads configuration from file and env. Env var overrides use prefix GUAPITAL_.
// An explicit path wins over $GUAPITAL_CONFIG and ~/.config/guapital/config.toml.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "guapital")

	// default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", filepath.Join(dataDir, "trajectory.db"))
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("jobs.snapshot_dir", filepath.Join(dataDir, "snapshots"))
	v.SetDefault("jobs.schedule", "@daily")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("rates.file", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("GUAPITAL_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "guapital"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GUAPITAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing default config file is fine; a named one must load
	if err := v.ReadInConfig(); err != nil && explicit {
		return Settings{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings that would otherwise fail late at startup
func (s Settings) Validate() error {
	switch s.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: database.driver must be sqlite or postgres, got %q", ErrInvalidInput, s.Database.Driver)
	}
	if s.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rate_limit cannot be negative", ErrInvalidInput)
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl cannot be negative", ErrInvalidInput)
	}
	switch s.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log.format must be json or text, got %q", ErrInvalidInput, s.Log.Format)
	}
	return nil
}
