// ABOUTME: Client configuration loaded from the environment and an optional .env file
// ABOUTME: Resolves the API URL, timeout, token slot, and logging settings

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhinavhh/hotel-booking-client/internal/session"
)

// Token slot backends
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// DefaultProfile names the token slot used when no profile is given
const DefaultProfile = "default"

type Config struct {
	// Backend
	APIURL  string        `env:"HOTELBOOK_API_URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"HOTELBOOK_TIMEOUT" envDefault:"30s"` // 0 disables

	// Token slot
	TokenStore string `env:"HOTELBOOK_TOKEN_STORE" envDefault:"file"` // file, redis, memory
	RedisURL   string `env:"HOTELBOOK_REDIS_URL"`
	ConfigDir  string `env:"HOTELBOOK_CONFIG_DIR"`
	Profile    string `env:"HOTELBOOK_PROFILE" envDefault:"default"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Terminal
	NerdFonts bool `env:"HOTELBOOK_NERD_FONTS"`
}

// Load reads .env (if present) and then the process environment
func Load() (*Config, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return &cfg, nil
}

// Sanitize normalizes case and fills derived defaults
func (c *Config) Sanitize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.TokenStore = strings.ToLower(strings.TrimSpace(c.TokenStore))
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.Profile == "" {
		c.Profile = DefaultProfile
	}
	if c.ConfigDir == "" {
		c.ConfigDir = session.DefaultConfigDir()
	}
}

// Validate rejects settings the client cannot run with
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API URL %q: must be an http(s) URL", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", c.Timeout)
	}

	switch c.TokenStore {
	case StoreFile:
		if c.ConfigDir == "" {
			return errors.New("no config directory: set HOTELBOOK_CONFIG_DIR")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("HOTELBOOK_REDIS_URL is required when HOTELBOOK_TOKEN_STORE=redis")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown token store %q: must be file, redis, or memory", c.TokenStore)
	}

	if strings.ContainsAny(c.Profile, `/\`) || c.Profile == "." || c.Profile == ".." {
		return fmt.Errorf("invalid profile name %q", c.Profile)
	}
	return nil
}

// ProfileDir is where the file token slot for the active profile lives
func (c *Config) ProfileDir() string {
	if c.Profile == DefaultProfile {
		return c.ConfigDir
	}
	return filepath.Join(c.ConfigDir, "profiles", c.Profile)
}

// OpenStore builds the configured token slot. The returned close function
// releases any connection and is never nil.
func (c *Config) OpenStore() (session.Store, func() error, error) {
	noop := func() error { return nil }

	switch c.TokenStore {
	case StoreRedis:
		rs, err := session.OpenRedisStore(c.RedisURL, c.Profile)
		if err != nil {
			return nil, noop, err
		}
		return rs, rs.Close, nil
	case StoreMemory:
		return session.NewMemoryStore(), noop, nil
	default:
		return session.NewFileStore(c.ProfileDir()), noop, nil
	}
}
