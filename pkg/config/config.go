// Package config loads timelane settings from a TOML file and the
// environment.
//
// Precedence is environment over file over defaults. A missing file is not
// an error. The file lives at $XDG_CONFIG_HOME/timelane/config.toml, or
// ~/.config/timelane/config.toml when XDG_CONFIG_HOME is unset:
//
//	[layout]
//	pixels_per_unit = 4
//	max_relocations = 10
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/timelane/pkg/cache"
	"github.com/matzehuels/timelane/pkg/errors"
	"github.com/matzehuels/timelane/pkg/timeline"
)

const appName = "timelane"

// Environment variables that override file values.
const (
	EnvConfig        = "TIMELANE_CONFIG"
	EnvCacheBackend  = "TIMELANE_CACHE_BACKEND"
	EnvRedisAddr     = "TIMELANE_REDIS_ADDR"
	EnvRedisPassword = "TIMELANE_REDIS_PASSWORD"
	EnvRedisDB       = "TIMELANE_REDIS_DB"
	EnvMongoURI      = "TIMELANE_MONGO_URI"
	EnvServerAddr    = "TIMELANE_SERVER_ADDR"
)

// Config is the effective configuration.
type Config struct {
	Layout timeline.Params `toml:"layout"`
	Cache  Cache           `toml:"cache"`
	Server Server          `toml:"server"`
}

// Cache selects and configures the layout cache backend.
type Cache struct {
	Backend         string   `toml:"backend"`
	Dir             string   `toml:"dir"`
	RedisAddr       string   `toml:"redis_addr"`
	RedisPassword   string   `toml:"redis_password"`
	RedisDB         int      `toml:"redis_db"`
	MongoURI        string   `toml:"mongo_uri"`
	MongoDatabase   string   `toml:"mongo_database"`
	MongoCollection string   `toml:"mongo_collection"`
	TTL             Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string   `toml:"addr"`
	ReadTimeout Duration `toml:"read_timeout"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct{ time.Duration }

// UnmarshalText parses strings like "10s" or "168h".
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText writes the duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: timeline.DefaultParams(),
		Cache: Cache{
			Backend:         string(cache.BackendFile),
			Dir:             DefaultCacheDir(),
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   appName,
			MongoCollection: "layouts",
			TTL:             Duration{cache.TTLLayout},
		},
		Server: Server{
			Addr:        ":8080",
			ReadTimeout: Duration{10 * time.Second},
		},
	}
}

// DefaultPath returns the config file path.
func DefaultPath() string {
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// DefaultCacheDir returns the file cache directory (~/.cache/timelane/).
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", appName)
}

// Load reads the file at path (DefaultPath when empty) over the defaults and
// applies environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := os.Getenv(EnvRedisDB); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvRedisDB)
		}
		c.Cache.RedisDB = db
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Cache.MongoURI = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks the layout params and the cache backend name.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[layout]")
	}
	if _, err := cache.ParseBackend(c.Cache.Backend); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[cache]")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] ttl must not be negative")
	}
	return nil
}

// CacheSettings converts the [cache] section for cache.Open.
func (c *Config) CacheSettings() cache.Settings {
	backend, _ := cache.ParseBackend(c.Cache.Backend)
	return cache.Settings{
		Backend:         backend,
		Dir:             c.Cache.Dir,
		RedisAddr:       c.Cache.RedisAddr,
		RedisPassword:   c.Cache.RedisPassword,
		RedisDB:         c.Cache.RedisDB,
		MongoURI:        c.Cache.MongoURI,
		MongoDatabase:   c.Cache.MongoDatabase,
		MongoCollection: c.Cache.MongoCollection,
	}
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
