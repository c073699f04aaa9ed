// Package config reads defaults for the CLI and server from the environment.
//
// A .env file in the working directory is loaded first, then every
// CODEFLOW_* variable is decoded into [Config]. Command-line flags override
// whatever is found here.
package config

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/afero"

	"github.com/matzehuels/codeflow/pkg/cache"
)

// Prefix is prepended to every variable name below.
const Prefix = "CODEFLOW_"

// Config holds environment-provided defaults.
type Config struct {
	Format   string `env:"FORMAT,default=png"`
	Theme    string `env:"THEME"`
	Renderer string `env:"RENDERER,default=shapes"`
	CacheDir string `env:"CACHE_DIR"`
	NoCache  bool   `env:"NO_CACHE,default=false"`
	RedisURL string `env:"REDIS_URL"`
	Addr     string `env:"ADDR,default=:8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load reads .env (if present) and the process environment.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is the common case
	_ = godotenv.Load()
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith decodes the CODEFLOW_* variables visible through l.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var c Config
	if err := envconfig.ProcessWith(ctx, &c, envconfig.PrefixLookuper(Prefix, l)); err != nil {
		return nil, fmt.Errorf("read %s environment: %w", Prefix, err)
	}
	return &c, nil
}

// Level returns the configured log level.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%sLOG_LEVEL: %w", Prefix, err)
	}
	return lvl, nil
}

// OpenCache returns the cache the configuration asks for: none when NoCache
// is set, Redis when RedisURL is set, otherwise files under CacheDir (or the
// per-user cache directory).
func (c *Config) OpenCache(ctx context.Context, fs afero.Fs) (cache.Cache, error) {
	switch {
	case c.NoCache:
		return cache.NewNullCache(), nil
	case c.RedisURL != "":
		return cache.NewRedisCache(ctx, c.RedisURL)
	}
	dir := c.CacheDir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir(); err != nil {
			return nil, fmt.Errorf("locate cache directory: %w", err)
		}
	}
	return cache.NewFileCache(fs, dir)
}
