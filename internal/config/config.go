package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Store     StoreConfig     `yaml:"store"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

type AppConfig struct {
	Name  string `yaml:"name"`
	Env   string `yaml:"env"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads the optional YAML file, applies environment overrides, and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name: "tradermindset",
			Env:  "development",
			Port: 8080,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		RateLimit: RateLimitConfig{
			RPS:   50,
			Burst: 100,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func (c *Config) loadFromEnv() {
	if env := os.Getenv("APP_ENV"); env != "" {
		c.App.Env = env
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.App.Port = p
		}
	}
	if debug := os.Getenv("APP_DEBUG"); debug != "" {
		c.App.Debug = debug == "true" || debug == "1"
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		c.Store.Backend = backend
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Store.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		c.Store.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			c.Store.Redis.DB = n
		}
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
}

func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.App.Port)
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	return nil
}
