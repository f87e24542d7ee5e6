package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Game struct {
		MaxGuesses  int           `yaml:"max_guesses"`
		AnchorDate  string        `yaml:"anchor_date"` // YYYY-MM-DD
		Timezone    string        `yaml:"timezone"`    // IANA zone for the daily rollover
		SecretKey   string        `yaml:"secret_key"`
		TickersFile string        `yaml:"tickers_file"`
		SessionTTL  time.Duration `yaml:"session_ttl"`
	} `yaml:"game"`
	Quotes struct {
		BaseURL  string        `yaml:"base_url"`
		ChartURL string        `yaml:"chart_url"`
		Timeout  time.Duration `yaml:"timeout"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"quotes"`
	Cache struct {
		Backend string `yaml:"backend"` // memory or redis
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled"`
		Burst        float64 `yaml:"burst"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Game.SecretKey = v
	}
	if v := os.Getenv("MAX_GUESSES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Game.MaxGuesses = n
		}
	}
	if v := os.Getenv("ANCHOR_DATE"); v != "" {
		c.Game.AnchorDate = v
	}
	if v := os.Getenv("TICKERS_FILE"); v != "" {
		c.Game.TickersFile = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Redis.Addr = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Game.MaxGuesses == 0 {
		c.Game.MaxGuesses = 6
	}
	if c.Game.Timezone == "" {
		c.Game.Timezone = "America/Toronto"
	}
	if c.Game.SessionTTL == 0 {
		c.Game.SessionTTL = 24 * time.Hour
	}
	if c.Quotes.BaseURL == "" {
		c.Quotes.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Quotes.ChartURL == "" {
		c.Quotes.ChartURL = "https://chart.finance.yahoo.com/z"
	}
	if c.Quotes.Timeout == 0 {
		c.Quotes.Timeout = 5 * time.Second
	}
	if c.Quotes.CacheTTL == 0 {
		c.Quotes.CacheTTL = 600 * time.Second
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "stockle"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Game.SecretKey == "" {
		return fmt.Errorf("game.secret_key is required")
	}
	if c.Game.TickersFile == "" {
		return fmt.Errorf("game.tickers_file is required")
	}
	if c.Game.MaxGuesses < 1 {
		return fmt.Errorf("game.max_guesses must be at least 1, got %d", c.Game.MaxGuesses)
	}
	if c.Game.AnchorDate == "" {
		return fmt.Errorf("game.anchor_date is required")
	}
	if _, err := time.Parse("2006-01-02", c.Game.AnchorDate); err != nil {
		return fmt.Errorf("game.anchor_date must be YYYY-MM-DD, got '%s'", c.Game.AnchorDate)
	}
	if _, err := time.LoadLocation(c.Game.Timezone); err != nil {
		return fmt.Errorf("game.timezone '%s' is not a valid IANA zone: %w", c.Game.Timezone, err)
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when cache.backend is redis")
	}
	return nil
}
