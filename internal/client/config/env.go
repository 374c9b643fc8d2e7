package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with any STOCKKEEPER_* variables that are set.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
