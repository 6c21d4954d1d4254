// Package config loads and validates the Inkwell service configuration from a
// YAML file with environment variable expansion and optional .env files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/inkwell-sites/inkwell/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Notion  NotionConfig  `yaml:"notion"`
	Server  ServerConfig  `yaml:"server"`
	Cache   CacheConfig   `yaml:"cache"`
	Webhook WebhookConfig `yaml:"webhook"`
	Mail    MailConfig    `yaml:"mail"`
	Events  EventsConfig  `yaml:"events"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// NotionConfig holds source store credentials and transport tuning.
type NotionConfig struct {
	Token      string      `yaml:"token"`
	DatabaseID string      `yaml:"database_id"`
	BaseURL    string      `yaml:"base_url,omitempty"`
	Version    string      `yaml:"version,omitempty"`
	TimeoutSec int         `yaml:"timeout_seconds,omitempty"`
	Retry      RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig holds backoff settings for the source store transport.
type RetryConfig struct {
	Mode       RetryBackoffMode `yaml:"mode,omitempty"` // fixed|linear|exponential
	InitialMS  int              `yaml:"initial_ms,omitempty"`
	MaxMS      int              `yaml:"max_ms,omitempty"`
	MaxRetries int              `yaml:"max_retries"`
}

// RetryBackoffMode enumerates supported backoff growth modes.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	APIPort     int      `yaml:"api_port"`
	AdminPort   int      `yaml:"admin_port"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// CacheConfig holds response cache TTLs (seconds).
type CacheConfig struct {
	ListTTLSec         int `yaml:"list_ttl_seconds"`
	PostTTLSec         int `yaml:"post_ttl_seconds"`
	CleanupIntervalSec int `yaml:"cleanup_interval_seconds"`
}

// WebhookConfig holds webhook endpoint settings.
type WebhookConfig struct {
	VerificationToken string `yaml:"verification_token,omitempty"`
}

// MailConfig holds SMTP relay settings for the contact form.
type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// EventsConfig holds optional NATS invalidation event publishing settings.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// StorageConfig holds the webhook delivery log location.
type StorageConfig struct {
	DeliveryLogPath string `yaml:"delivery_log_path,omitempty"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// ListTTL returns the posts-list cache TTL.
func (c CacheConfig) ListTTL() time.Duration { return time.Duration(c.ListTTLSec) * time.Second }

// PostTTL returns the per-post cache TTL.
func (c CacheConfig) PostTTL() time.Duration { return time.Duration(c.PostTTLSec) * time.Second }

// CleanupInterval returns the periodic expiry sweep interval.
func (c CacheConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalSec) * time.Second
}

// Timeout returns the transport request timeout.
func (c NotionConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; process env always wins.
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				fmt.Fprintf(os.Stderr, "Note: %s couldn't be loaded: %v\n", envPath, err)
			}
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file")
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config")
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Notion.BaseURL == "" {
		c.Notion.BaseURL = "https://api.notion.com"
	}
	if c.Notion.Version == "" {
		c.Notion.Version = "2022-06-28"
	}
	if c.Notion.TimeoutSec <= 0 {
		c.Notion.TimeoutSec = 30
	}
	if c.Server.APIPort == 0 {
		c.Server.APIPort = 8000
	}
	if c.Server.AdminPort == 0 {
		c.Server.AdminPort = 8001
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if c.Cache.ListTTLSec <= 0 {
		c.Cache.ListTTLSec = 300
	}
	if c.Cache.PostTTLSec <= 0 {
		c.Cache.PostTTLSec = 600
	}
	if c.Cache.CleanupIntervalSec <= 0 {
		c.Cache.CleanupIntervalSec = 300
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Events.Subject == "" {
		c.Events.Subject = "inkwell.cache.invalidated"
	}
	if c.Storage.DeliveryLogPath == "" {
		c.Storage.DeliveryLogPath = "./inkwell-deliveries.db"
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Notion.Token == "" {
		return errors.ConfigRequired("notion.token")
	}
	if c.Notion.DatabaseID == "" {
		return errors.ConfigRequired("notion.database_id")
	}
	if c.Server.APIPort == c.Server.AdminPort {
		return errors.ValidationFailed("server.admin_port", "must differ from api_port")
	}
	if c.Events.Enabled && c.Events.NATSURL == "" {
		return errors.ConfigRequired("events.nats_url")
	}
	return nil
}
