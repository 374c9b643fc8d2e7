// Package config loads runtime configuration for the StockKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. STOCKKEEPER_* environment variables.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string     API root, e.g. http://127.0.0.1:8000/api
//	-t int        request timeout (seconds)
//	-i int        online status check interval (seconds)
//	-cache string response cache backend: memory, redis or none
//	-db string    path of the local SQLite file
//
// # File schema
//
// Durations may be strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api",
//	  "request_timeout": "30s",
//	  "cache_backend": "redis",
//	  "redis_addr": "127.0.0.1:6379"
//	}
//
// A malformed file, environment value or flag panics: there is no sensible
// way to continue start-up with half a configuration.
package config
