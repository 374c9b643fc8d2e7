package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds runtime settings for the StockKeeper CLI.
//
// Env tags name the variables read by parseEnv. None of them carry a default:
// an unset variable leaves the value from earlier sources alone.
type Config struct {
	APIBaseURL          string        `env:"STOCKKEEPER_API_BASE_URL" validate:"required,url"`
	RequestTimeout      time.Duration `env:"STOCKKEEPER_REQUEST_TIMEOUT" validate:"gt=0"`
	UploadTimeout       time.Duration `env:"STOCKKEEPER_UPLOAD_TIMEOUT" validate:"gt=0"`
	CacheBackend        string        `env:"STOCKKEEPER_CACHE_BACKEND" validate:"oneof=memory redis none"`
	CacheDuration       time.Duration `env:"STOCKKEEPER_CACHE_DURATION" validate:"gt=0"`
	RedisAddr           string        `env:"STOCKKEEPER_REDIS_ADDR" validate:"required_if=CacheBackend redis"`
	StoragePath         string        `env:"STOCKKEEPER_DB" validate:"required"`
	RedirectDelay       time.Duration `env:"STOCKKEEPER_REDIRECT_DELAY" validate:"gte=0"`
	OnlineCheckInterval time.Duration `env:"STOCKKEEPER_ONLINE_CHECK_INTERVAL" validate:"gt=0"`
	LogLevel            string        `env:"STOCKKEEPER_LOG_LEVEL"`
	MetricsAddr         string        `env:"STOCKKEEPER_METRICS_ADDR"`
	TraceEndpoint       string        `env:"STOCKKEEPER_OTLP_ENDPOINT"`
	TraceInsecure       bool          `env:"STOCKKEEPER_OTLP_INSECURE"`
	TraceSampleRate     float64       `env:"STOCKKEEPER_TRACE_SAMPLE_RATE" validate:"gte=0,lte=1"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.UploadTimeout = 60 * time.Second
	c.CacheBackend = CacheMemory
	c.CacheDuration = 30 * time.Second
	c.RedisAddr = "127.0.0.1:6379"
	c.StoragePath = "stockkeeper.db"
	c.RedirectDelay = 100 * time.Millisecond
	c.OnlineCheckInterval = 10 * time.Second
	c.LogLevel = "info"
	c.MetricsAddr = ""
	c.TraceEndpoint = ""
	c.TraceInsecure = false
	c.TraceSampleRate = 1
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig constructs a Config, applies defaults, then overlays the config
// file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func args() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}
