package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration, loaded from the environment
// (and an optional .env file for local development) via viper.
type Config struct {
	// Server
	Port string `mapstructure:"PORT"`

	// Upstream catalog API
	UpstreamBaseUrl   string `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamAuthToken string `mapstructure:"UPSTREAM_AUTH_TOKEN"`
	UpstreamClientID  string `mapstructure:"UPSTREAM_CLIENT_ID"`

	// Webhook registration/ingress
	WebHookRootAddress string `mapstructure:"WEBHOOK_ROOT_ADDRESS"`
	WebHookSecret      string `mapstructure:"WEBHOOK_SECRET"`

	// Store. Generalizes localnerve-jam-build-propsdb's MongoConnectionString/MongoDatabaseName
	// onto a GORM multi-dialect relational store — see DESIGN.md.
	StoreDriver          string `mapstructure:"STORE_DRIVER"` // mysql, postgres, sqlite, sqlserver
	StoreDSN             string `mapstructure:"STORE_DSN"`
	StoreDatabase        string `mapstructure:"STORE_DATABASE"`
	StoreConnectionLimit int    `mapstructure:"STORE_CONNECTION_LIMIT"`

	// Redis read-through cache
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	// Kafka delta fan-out
	KafkaBrokers    []string `mapstructure:"-"`
	KafkaBrokersRaw string   `mapstructure:"KAFKA_BROKERS"`
	KafkaDeltaTopic string   `mapstructure:"KAFKA_DELTA_TOPIC"`

	// Scheduler (robfig/cron)
	ReCloneCron string `mapstructure:"RECLONE_CRON"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	// Telemetry
	OtelExporterEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelServiceName      string `mapstructure:"OTEL_SERVICE_NAME"`
}

// Load reads configuration from the environment and validates the fields
// that are always required. WebHookRootAddress and WebHookSecret are
// validated lazily by ConfigureWebhooks, not here
// ("Missing WebHookRootAddress or WebHookSecret ... is a fatal error raised
// by ConfigureWebhooks").
func Load() (*Config, error) {
	_ = godotenv.Load() // best-effort, dev convenience only

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "3000")
	v.SetDefault("STORE_DRIVER", "mysql")
	v.SetDefault("STORE_CONNECTION_LIMIT", 10)
	v.SetDefault("RECLONE_CRON", "0 3 * * *")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CACHE_TTL", 10*time.Minute)
	v.SetDefault("KAFKA_DELTA_TOPIC", "igdbmatch.mirror.deltas")
	v.SetDefault("OTEL_SERVICE_NAME", "igdbmatch")

	cfg := &Config{
		Port:                 v.GetString("PORT"),
		UpstreamBaseUrl:      v.GetString("UPSTREAM_BASE_URL"),
		UpstreamAuthToken:    v.GetString("UPSTREAM_AUTH_TOKEN"),
		UpstreamClientID:     v.GetString("UPSTREAM_CLIENT_ID"),
		WebHookRootAddress:   v.GetString("WEBHOOK_ROOT_ADDRESS"),
		WebHookSecret:        v.GetString("WEBHOOK_SECRET"),
		StoreDriver:          v.GetString("STORE_DRIVER"),
		StoreDSN:             v.GetString("STORE_DSN"),
		StoreDatabase:        v.GetString("STORE_DATABASE"),
		StoreConnectionLimit: v.GetInt("STORE_CONNECTION_LIMIT"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		CacheTTL:             v.GetDuration("CACHE_TTL"),
		KafkaBrokersRaw:      v.GetString("KAFKA_BROKERS"),
		KafkaDeltaTopic:      v.GetString("KAFKA_DELTA_TOPIC"),
		ReCloneCron:          v.GetString("RECLONE_CRON"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFile:              v.GetString("LOG_FILE"),
		OtelExporterEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelServiceName:      v.GetString("OTEL_SERVICE_NAME"),
	}

	if cfg.KafkaBrokersRaw != "" {
		for _, b := range strings.Split(cfg.KafkaBrokersRaw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.UpstreamBaseUrl == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.StoreDatabase == "" {
		return nil, fmt.Errorf("STORE_DATABASE is required")
	}

	return cfg, nil
}

// WebhooksConfigured reports whether the fields ConfigureWebhooks requires
// are present.
func (c *Config) WebhooksConfigured() bool {
	return c.WebHookRootAddress != "" && c.WebHookSecret != ""
}
