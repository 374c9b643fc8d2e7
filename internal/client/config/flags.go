package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string      API root URL
//	-t int         request timeout in seconds
//	-i int         online check interval in seconds
//	-cache string  response cache backend
//	-db string     local database path
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, so -c/-config and other components' flags do not
// trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(args(), []string{"-a", "-t", "-i", "-cache", "-db"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API root URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.CacheBackend, "cache", cfg.CacheBackend, "response cache backend: memory, redis or none")
	fs.StringVar(&cfg.StoragePath, "db", cfg.StoragePath, "path of the local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
}
