package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
	"gopkg.in/yaml.v3"
)

// Duration accepts "30s"-style strings or integer nanoseconds in both JSON
// and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(int64(x))
	case int:
		*d = Duration(int64(x))
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// FileConfig is the on-disk shape. Pointer fields distinguish "absent" from
// "zero" so a file only overrides what it names.
type FileConfig struct {
	APIBaseURL          *string   `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout      *Duration `json:"request_timeout" yaml:"request_timeout"`
	UploadTimeout       *Duration `json:"upload_timeout" yaml:"upload_timeout"`
	CacheBackend        *string   `json:"cache_backend" yaml:"cache_backend"`
	CacheDuration       *Duration `json:"cache_duration" yaml:"cache_duration"`
	RedisAddr           *string   `json:"redis_addr" yaml:"redis_addr"`
	StoragePath         *string   `json:"storage_path" yaml:"storage_path"`
	RedirectDelay       *Duration `json:"redirect_delay" yaml:"redirect_delay"`
	OnlineCheckInterval *Duration `json:"online_check_interval" yaml:"online_check_interval"`
	LogLevel            *string   `json:"log_level" yaml:"log_level"`
	MetricsAddr         *string   `json:"metrics_addr" yaml:"metrics_addr"`
	TraceEndpoint       *string   `json:"otlp_endpoint" yaml:"otlp_endpoint"`
	TraceInsecure       *bool     `json:"otlp_insecure" yaml:"otlp_insecure"`
	TraceSampleRate     *float64  `json:"trace_sample_rate" yaml:"trace_sample_rate"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
// Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile(args())
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(fmt.Errorf("parse %s: %w", path, err))
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.CacheBackend, fc.CacheBackend)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.StoragePath, fc.StoragePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	setString(&cfg.TraceEndpoint, fc.TraceEndpoint)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.UploadTimeout, fc.UploadTimeout)
	setDuration(&cfg.CacheDuration, fc.CacheDuration)
	setDuration(&cfg.RedirectDelay, fc.RedirectDelay)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
	if fc.TraceInsecure != nil {
		cfg.TraceInsecure = *fc.TraceInsecure
	}
	if fc.TraceSampleRate != nil {
		cfg.TraceSampleRate = *fc.TraceSampleRate
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *Duration) {
	if v != nil {
		*dst = time.Duration(*v)
	}
}
