package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samvad-hq/assistly-go/pkg/httpclient"
)

// DefaultEnvFile is read, when present, before the environment is consulted.
const DefaultEnvFile = "configs/.env"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL    string `mapstructure:"assistly_base_url"`
	Subdomain  string `mapstructure:"assistly_subdomain"`
	APIVersion string `mapstructure:"assistly_api_version"`
	Format     string `mapstructure:"assistly_format"`
	UserAgent  string `mapstructure:"assistly_user_agent"`

	AuthMode         string `mapstructure:"assistly_auth"`
	ConsumerKey      string `mapstructure:"assistly_consumer_key"`
	ConsumerSecret   string `mapstructure:"assistly_consumer_secret"`
	OAuthToken       string `mapstructure:"assistly_oauth_token"`
	OAuthTokenSecret string `mapstructure:"assistly_oauth_token_secret"`
	Username         string `mapstructure:"assistly_username"`
	Password         string `mapstructure:"assistly_password"`
	APIToken         string `mapstructure:"assistly_api_token"`

	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPRetryCount     int           `mapstructure:"http_retry_count"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	PublishersFile      string        `mapstructure:"publishers_file"`
	SyncIntervalSeconds int64         `mapstructure:"sync_interval"`
	SyncInterval        time.Duration `mapstructure:"-"`
	SyncPageSize        int           `mapstructure:"sync_page_size"`
	SyncMaxPages        int           `mapstructure:"sync_max_pages"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and the given .env file.
// An empty envFile falls back to DefaultEnvFile; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if strings.TrimSpace(envFile) == "" {
		envFile = DefaultEnvFile
	}
	_ = godotenv.Load(envFile)

	v := viper.New()

	v.SetDefault("app_name", "assistly-go")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("assistly_base_url", "")
	v.SetDefault("assistly_subdomain", "")
	v.SetDefault("assistly_api_version", "v1")
	v.SetDefault("assistly_format", httpclient.DefaultFormat)
	v.SetDefault("assistly_user_agent", "assistly-go")
	v.SetDefault("assistly_auth", string(httpclient.AuthOAuth1))
	v.SetDefault("assistly_consumer_key", "")
	v.SetDefault("assistly_consumer_secret", "")
	v.SetDefault("assistly_oauth_token", "")
	v.SetDefault("assistly_oauth_token_secret", "")
	v.SetDefault("assistly_username", "")
	v.SetDefault("assistly_password", "")
	v.SetDefault("assistly_api_token", "")

	v.SetDefault("http_timeout_seconds", int64(httpclient.DefaultTimeout/time.Second))
	v.SetDefault("http_retry_count", 0)

	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("sync_interval", 300) // seconds
	v.SetDefault("sync_page_size", 50)
	v.SetDefault("sync_max_pages", 20)

	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/sync.db")
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

func (c *Config) normalize() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Subdomain = strings.TrimSpace(c.Subdomain)
	if c.BaseURL == "" && c.Subdomain == "" {
		return fmt.Errorf("assistly_base_url or assistly_subdomain is required")
	}

	mode, err := httpclient.ParseAuthMode(c.AuthMode)
	if err != nil {
		return err
	}
	c.AuthMode = string(mode)
	if err := c.Auth().Validate(); err != nil {
		return fmt.Errorf("invalid assistly credentials: %w", err)
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	if c.HTTPRetryCount < 0 {
		return fmt.Errorf("invalid http_retry_count (must not be negative)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second

	if c.SyncIntervalSeconds <= 0 {
		return fmt.Errorf("invalid sync_interval (must be positive seconds)")
	}
	if c.SyncPageSize <= 0 {
		return fmt.Errorf("invalid sync_page_size (must be positive)")
	}
	if c.SyncMaxPages <= 0 {
		return fmt.Errorf("invalid sync_max_pages (must be positive)")
	}
	c.SyncInterval = time.Duration(c.SyncIntervalSeconds) * time.Second

	if c.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	c.StorageTTL = time.Duration(c.StorageTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second

	return nil
}

// APIBaseURL returns the configured base URL or the one derived from the subdomain.
func (c *Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s.assistly.com/api/%s", c.Subdomain, c.APIVersion)
}

// Auth assembles the executor credentials for the configured mode.
func (c *Config) Auth() httpclient.Auth {
	return httpclient.Auth{
		Mode:             httpclient.AuthMode(c.AuthMode),
		Username:         c.Username,
		Password:         c.Password,
		Token:            c.APIToken,
		ConsumerKey:      c.ConsumerKey,
		ConsumerSecret:   c.ConsumerSecret,
		OAuthToken:       c.OAuthToken,
		OAuthTokenSecret: c.OAuthTokenSecret,
	}
}

// ExecutorOptions maps the HTTP settings onto httpclient.Options.
func (c *Config) ExecutorOptions(log httpclient.Logger) httpclient.Options {
	return httpclient.Options{
		BaseURL:    c.APIBaseURL(),
		Format:     c.Format,
		UserAgent:  c.UserAgent,
		Timeout:    c.HTTPTimeout,
		RetryCount: c.HTTPRetryCount,
		Auth:       c.Auth(),
		Logger:     log,
	}
}

// Redacted returns a loggable view of the config without credentials.
func (c *Config) Redacted() map[string]any {
	return map[string]any{
		"app_name":         c.AppName,
		"app_env":          c.Env,
		"log_level":        c.LogLevel,
		"base_url":         c.APIBaseURL(),
		"format":           c.Format,
		"auth":             c.AuthMode,
		"http_timeout":     c.HTTPTimeout.String(),
		"http_retry_count": c.HTTPRetryCount,
		"publishers_file":  c.PublishersFile,
		"sync_interval":    c.SyncInterval.String(),
		"sync_page_size":   c.SyncPageSize,
		"sync_max_pages":   c.SyncMaxPages,
		"storage_type":     c.StorageType,
		"bbolt_path":       c.BBoltPath,
	}
}
