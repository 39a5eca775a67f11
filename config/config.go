package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Session backends accepted in SESSION_BACKEND.
const (
	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

type Config struct {
	Port        string `yaml:"port" env:"PORT" env-default:"8080"`
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	APIBaseURL string        `yaml:"api_base_url" env:"API_BASE_URL" env-default:"http://localhost:5000"`
	APITimeout time.Duration `yaml:"api_timeout" env:"API_TIMEOUT" env-default:"15s"`

	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES" env-separator:","`

	Session  Session  `yaml:"session"`
	Database Database `yaml:"database"`
	Redis    Redis    `yaml:"redis"`
	Weather  Weather  `yaml:"weather"`
	Twilio   Twilio   `yaml:"twilio"`
	Tracing  Tracing  `yaml:"tracing"`

	LoginRatePerMinute int `yaml:"login_rate_per_minute" env:"LOGIN_RATE_PER_MINUTE" env-default:"20"`
}

type Session struct {
	Backend       string        `yaml:"backend" env:"SESSION_BACKEND" env-default:"memory"`
	Secret        string        `yaml:"secret" env:"SESSION_SECRET"`
	TTL           time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	CookieName    string        `yaml:"cookie_name" env:"SESSION_COOKIE" env-default:"barbershop_session"`
	PurgeSchedule string        `yaml:"purge_schedule" env:"SESSION_PURGE_SCHEDULE" env-default:"@every 1h"`
}

type Database struct {
	URL string `yaml:"url" env:"DB_URL"`
}

type Redis struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	KeyPrefix   string        `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"barbershop"`
}

type Weather struct {
	APIKey   string        `yaml:"api_key" env:"WEATHER_API_KEY"`
	City     string        `yaml:"city" env:"WEATHER_CITY" env-default:"Amman"`
	BaseURL  string        `yaml:"base_url" env:"WEATHER_BASE_URL" env-default:"https://api.weatherapi.com/v1"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"WEATHER_CACHE_TTL" env-default:"10m"`
}

type Twilio struct {
	AccountSID  string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken   string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	PhoneNumber string `yaml:"phone_number" env:"TWILIO_PHONE_NUMBER"`
	Schedule    string `yaml:"schedule" env:"SCHEDULE_SMS_CRON" env-default:"0 8 * * *"`
}

type Tracing struct {
	Enabled     bool    `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"barbershop-web"`
	Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
	SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLING_RATIO" env-default:"1"`
}

// Enabled reports whether schedule SMS can be sent.
func (t Twilio) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.PhoneNumber != ""
}

// Load reads CONFIG_PATH (yaml, overridden by env) when set, otherwise the
// environment alone, and validates the result.
func Load() (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.Session.Secret == "" {
		if c.IsProduction() {
			return fmt.Errorf("SESSION_SECRET is required in production")
		}
		c.Session.Secret = "dev-session-secret"
	}
	switch c.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DB_URL is required for the postgres session backend")
		}
	case SessionBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	for _, p := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(p); err != nil && net.ParseIP(p) == nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p)
		}
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when tracing is enabled")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATIO must be between 0 and 1")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
