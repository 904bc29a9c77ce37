package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	OKXBaseURL         string        `mapstructure:"okx_base_url"`
	OKXAPIKey          string        `mapstructure:"okx_api_key"`
	OKXSecretKey       string        `mapstructure:"okx_secret_key"`
	OKXPassphrase      string        `mapstructure:"okx_passphrase"`
	OKXSimulated       bool          `mapstructure:"okx_simulated"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	TargetsFile         string        `mapstructure:"targets_file"`
	PublishersFile      string        `mapstructure:"publishers_file"`
	PollIntervalSeconds int64         `mapstructure:"poll_interval"`
	PollInterval        time.Duration `mapstructure:"-"`
	RateLimitPerSecond  float64       `mapstructure:"rate_limit_per_second"`
	RateLimitBurst      int           `mapstructure:"rate_limit_burst"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "okx-listing-watch")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("okx_base_url", "https://www.okx.com/api/v5/")
	v.SetDefault("okx_api_key", "")
	v.SetDefault("okx_secret_key", "")
	v.SetDefault("okx_passphrase", "")
	v.SetDefault("okx_simulated", false)
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("targets_file", "./configs/targets.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("poll_interval", 300) // seconds
	v.SetDefault("rate_limit_per_second", 10.0)
	v.SetDefault("rate_limit_burst", 1)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/listings.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.OKXBaseURL = strings.TrimSpace(cfg.OKXBaseURL)
	if cfg.OKXBaseURL == "" {
		return fmt.Errorf("okx_base_url must not be empty")
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.PollIntervalSeconds <= 0 {
		return fmt.Errorf("invalid poll_interval (must be positive seconds)")
	}
	cfg.PollInterval = time.Duration(cfg.PollIntervalSeconds) * time.Second

	if cfg.RateLimitPerSecond <= 0 {
		return fmt.Errorf("invalid rate_limit_per_second (must be positive)")
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 1
	}

	if cfg.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return nil
}

// HasCredentials reports whether the full OKX key triple is configured.
func (cfg *Config) HasCredentials() bool {
	return strings.TrimSpace(cfg.OKXAPIKey) != "" &&
		strings.TrimSpace(cfg.OKXSecretKey) != "" &&
		strings.TrimSpace(cfg.OKXPassphrase) != ""
}

// Redacted returns a copy safe to log.
func (cfg Config) Redacted() Config {
	if cfg.OKXSecretKey != "" {
		cfg.OKXSecretKey = "***"
	}
	if cfg.OKXPassphrase != "" {
		cfg.OKXPassphrase = "***"
	}
	return cfg
}
