package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays WORKLOG_* environment variables. Unset variables leave
// the current value untouched. Durations use Go syntax ("90m").
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
