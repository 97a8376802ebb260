package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and
// environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	TargetsFile string `mapstructure:"targets_file"`
	SinksFile   string `mapstructure:"sinks_file"`
	TargetID    string `mapstructure:"target_id"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	StorageType           string        `mapstructure:"storage_type"`
	BBoltPath             string        `mapstructure:"bbolt_path"`
	TokenTTLSeconds       int64         `mapstructure:"token_ttl_seconds"`
	StorageCleanupSeconds int64         `mapstructure:"storage_cleanup_interval_seconds"`
	TokenTTL              time.Duration `mapstructure:"-"`
	StorageCleanup        time.Duration `mapstructure:"-"`

	SubmitName  string `mapstructure:"submit_name"`
	SubmitEmail string `mapstructure:"submit_email"`
	SubmitURL   string `mapstructure:"submit_url"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	// Every unmarshalled key needs a default registered: viper only
	// resolves environment variables for keys it already knows about.
	v.SetDefault("app_name", "intake-submitter")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("targets_file", "./configs/targets.yaml")
	v.SetDefault("sinks_file", "")
	v.SetDefault("target_id", "")
	// 0 means "use the per-target timeout_seconds"; set a positive value to
	// override all targets.
	v.SetDefault("request_timeout_seconds", 0)
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/tokens.db")
	v.SetDefault("token_ttl_seconds", int64((30*time.Minute)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64(time.Hour/time.Second))
	v.SetDefault("submit_name", "")
	v.SetDefault("submit_email", "")
	v.SetDefault("submit_url", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.TargetID) == "" {
		return nil, fmt.Errorf("target_id is required")
	}
	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must not be negative)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.TokenTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid token_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.TokenTTL = time.Duration(cfg.TokenTTLSeconds) * time.Second
	cfg.StorageCleanup = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}
