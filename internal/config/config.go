package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrEmptyBotToken   = errors.New("telegram bot token is required when the bot is enabled")
	ErrEmptyDBPassword = errors.New("database password is required")
)

const defaultConfigPath = "configs/config.yaml"

type Config struct {
	App       AppConfig       `yaml:"app" env-prefix:"APP_"`
	Database  DatabaseConfig  `yaml:"database" env-prefix:"DB_"`
	HTTP      HTTPConfig      `yaml:"http" env-prefix:"HTTP_"`
	Providers ProvidersConfig `yaml:"providers" env-prefix:"PROVIDERS_"`
	Retrieve  RetrieveConfig  `yaml:"retrieve" env-prefix:"RETRIEVE_"`
	Scheduler SchedulerConfig `yaml:"scheduler" env-prefix:"SCHEDULER_"`
	NATS      NATSConfig      `yaml:"nats" env-prefix:"NATS_"`
	Bot       BotConfig       `yaml:"bot" env-prefix:"BOT_"`
}

type AppConfig struct {
	Name        string `yaml:"name" env:"NAME" env-default:"jokes-fetcher"`
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"production"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

type DatabaseConfig struct {
	Host           string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PORT" env-default:"5432"`
	User           string `yaml:"user" env:"USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"PASSWORD"`
	Name           string `yaml:"name" env:"NAME" env-default:"jokes_db"`
	SSLMode        string `yaml:"sslmode" env:"SSLMODE" env-default:"disable"`
	MaxConnections int    `yaml:"max_connections" env:"MAX_CONNECTIONS" env-default:"20"`
	MinConnections int    `yaml:"min_connections" env:"MIN_CONNECTIONS" env-default:"2"`
}

func (d DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

func (d DatabaseConfig) Validate() error {
	if d.Password == "" {
		return ErrEmptyDBPassword
	}
	return validation.ValidateStruct(&d,
		validation.Field(&d.Host, validation.Required),
		validation.Field(&d.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.MaxConnections, validation.Min(1)),
		validation.Field(&d.MinConnections, validation.Min(0), validation.Max(d.MaxConnections)),
	)
}

type HTTPConfig struct {
	Port            int           `yaml:"port" env:"PORT" env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"2m"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func (h HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", h.Port)
}

func (h HTTPConfig) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

type ProvidersConfig struct {
	Timeout        time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"10s"`
	UserAgent      string        `yaml:"user_agent" env:"USER_AGENT" env-default:"jokes-fetcher/1.0"`
	JokesOneAPIKey string        `yaml:"jokes_one_api_key" env:"JOKES_ONE_API_KEY"`
	Disabled       []string      `yaml:"disabled" env:"DISABLED" env-separator:","`
	Concurrency    int           `yaml:"concurrency" env:"CONCURRENCY" env-default:"10"`
}

func (p ProvidersConfig) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Timeout, validation.Required),
		validation.Field(&p.Concurrency, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

type RetrieveConfig struct {
	DefaultCount int `yaml:"default_count" env:"DEFAULT_COUNT" env-default:"100"`
}

func (r RetrieveConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DefaultCount, validation.Min(0), validation.Max(100)),
	)
}

type SchedulerConfig struct {
	Enabled  bool          `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Interval time.Duration `yaml:"interval" env:"INTERVAL" env-default:"30m"`
	Count    int           `yaml:"count" env:"COUNT" env-default:"100"`
}

func (s SchedulerConfig) Validate() error {
	if !s.Enabled {
		return nil
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.Interval, validation.Required, validation.Min(time.Second)),
		validation.Field(&s.Count, validation.Min(0), validation.Max(100)),
	)
}

type NATSConfig struct {
	Enabled    bool   `yaml:"enabled" env:"ENABLED" env-default:"false"`
	URL        string `yaml:"url" env:"URL" env-default:"nats://localhost:4222"`
	StreamName string `yaml:"stream_name" env:"STREAM_NAME" env-default:"JOKES"`
	Subject    string `yaml:"subject" env:"SUBJECT" env-default:"jokes.saved"`
}

func (n NATSConfig) Validate() error {
	if !n.Enabled {
		return nil
	}
	return validation.ValidateStruct(&n,
		validation.Field(&n.URL, validation.Required),
		validation.Field(&n.StreamName, validation.Required),
		validation.Field(&n.Subject, validation.Required),
	)
}

type BotConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Token   string `yaml:"token" env:"TOKEN"`
}

func (b BotConfig) Validate() error {
	if b.Enabled && b.Token == "" {
		return ErrEmptyBotToken
	}
	return nil
}

func (c *Config) Validate() error {
	validators := []validation.Validatable{
		c.Database, c.HTTP, c.Providers, c.Retrieve, c.Scheduler, c.NATS, c.Bot,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the YAML file named by CONFIG_PATH, applies environment
// overrides and validates the result. A missing file is not an error: the
// service can be configured from the environment alone.
func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
