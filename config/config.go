// Package config loads the client configuration from QUIZ_* environment variables. Command-line
// flags registered with RegisterFlags override the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/octabyte/quizmaster-client/enums"
	"github.com/octabyte/quizmaster-client/otel"
	"github.com/octabyte/quizmaster-client/queue"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	APIRoot    string        `env:"QUIZ_API_ROOT" envDefault:"http://localhost:5000/api" validate:"required,url"`
	APITimeout time.Duration `env:"QUIZ_API_TIMEOUT" envDefault:"0s" validate:"min=0"`

	Storage     string      `env:"QUIZ_STORAGE" envDefault:"file" validate:"oneof=file memory redis"`
	StoragePath string      `env:"QUIZ_STORAGE_PATH"`
	Redis       RedisConfig `envPrefix:"QUIZ_REDIS_"`

	LoginPath     string `env:"QUIZ_LOGIN_PATH" envDefault:"/login" validate:"startswith=/"`
	RejectExpired bool   `env:"QUIZ_REJECT_EXPIRED"`

	Env      string `env:"QUIZ_ENV" envDefault:"development"`
	Timezone string `env:"QUIZ_TIMEZONE" envDefault:"UTC" validate:"timezone"`
	Log      LogConfig

	NavAddr string `env:"QUIZ_NAV_ADDR" envDefault:"127.0.0.1:8080" validate:"hostname_port"`

	Otel   OtelConfig   `envPrefix:"QUIZ_OTEL_"`
	Events EventsConfig `envPrefix:"QUIZ_EVENTS_"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" validate:"min=0"`
	Prefix   string `env:"PREFIX" envDefault:"quizmaster"`
}

type LogConfig struct {
	Level    string `env:"QUIZ_LOG_LEVEL" envDefault:"info"`
	Encoding string `env:"QUIZ_LOG_ENCODING" envDefault:"console" validate:"oneof=json console"`
}

type OtelConfig struct {
	Enabled     bool              `env:"ENABLED"`
	Endpoint    string            `env:"ENDPOINT" envDefault:"localhost:4318"`
	Headers     map[string]string `env:"HEADERS"`
	SampleRate  float64           `env:"SAMPLE_RATE" envDefault:"1" validate:"min=0,max=1"`
	ServiceName string            `env:"SERVICE_NAME"`
}

type EventsConfig struct {
	AMQPURI      string `env:"AMQP_URI" validate:"omitempty,url"`
	Exchange     string `env:"EXCHANGE" envDefault:"quizmaster.session"`
	ExchangeType string `env:"EXCHANGE_TYPE" envDefault:"topic" validate:"oneof=direct topic fanout"`
	RoutingKey   string `env:"ROUTING_KEY" envDefault:"session.events"`
}

// Load parses the process environment. Call Validate once flags have been applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds the flags that override the environment. Current values become the
// flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.APIRoot, "api", c.APIRoot, "API root URL (default: QUIZ_API_ROOT)")
	fs.StringVar(&c.Storage, "storage", c.Storage, "token storage backend: file, memory or redis (default: QUIZ_STORAGE)")
	fs.StringVar(&c.StoragePath, "storage-path", c.StoragePath, "path of the file storage document (default: QUIZ_STORAGE_PATH)")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level (default: QUIZ_LOG_LEVEL)")
}

func (c Config) Validate() error {
	c.APIRoot = strings.TrimSpace(c.APIRoot)
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Storage == enums.StorageRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: QUIZ_REDIS_ADDR is required for redis storage", ErrInvalidConfig)
	}
	return nil
}

func (c Config) Logger(serviceName string) *logger.Config {
	return &logger.Config{
		Level:       c.Log.Level,
		Env:         c.Env,
		ServiceName: serviceName,
		Encoding:    c.Log.Encoding,
	}
}

func (c Config) Telemetry(serviceName, version string) otel.OtelConfig {
	name := c.Otel.ServiceName
	if name == "" {
		name = serviceName
	}
	return otel.OtelConfig{
		Enabled:        c.Otel.Enabled,
		Endpoint:       c.Otel.Endpoint,
		ServiceName:    name,
		ServiceVersion: version,
		Headers:        c.Otel.Headers,
		Environment:    c.Env,
		SampleRate:     c.Otel.SampleRate,
	}
}

// EventsEnabled reports whether session events should be published.
func (c Config) EventsEnabled() bool {
	return c.Events.AMQPURI != ""
}

func (c Config) EventsConnection() queue.ConnectionConfig {
	return queue.ConnectionConfig{
		URI: c.Events.AMQPURI,
		Exchange: &queue.ExchangeConfig{
			Name: c.Events.Exchange,
			Type: queue.ExchangeType(c.Events.ExchangeType),
		},
	}
}

func (c Config) EventsPublish() queue.PublishConfig {
	return queue.PublishConfig{
		Exchange:   c.Events.Exchange,
		RoutingKey: c.Events.RoutingKey,
	}
}
