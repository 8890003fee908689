package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/giftring/pkg/cache"
)

// Config is the CLI config file:
//
//	[generate]
//	attempts = 2000
//	workers = 4
//
//	[cache]
//	backend = "redis"   # file | redis | none
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//	redis_db = 0
//	namespace = "office"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// GenerateConfig holds defaults for requests that leave them unset.
type GenerateConfig struct {
	Attempts int `toml:"attempts"`
	Workers  int `toml:"workers"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	Namespace     string        `toml:"namespace"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   cache.BackendFile,
			TTL:       7 * 24 * time.Hour,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are an error so that typos do not pass silently.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	switch cfg.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return Config{}, fmt.Errorf("config %s: unknown cache backend %q", path, cfg.Cache.Backend)
	}
	return cfg, nil
}

func (c CacheConfig) cacheConfig() cache.Config {
	return cache.Config{
		Backend: c.Backend,
		Redis: cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		},
	}
}
