// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// Config holds runtime settings for the worklog server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (file path DSN) or "postgres" (pgx DSN).
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: how long a login stays valid.
//   - SeedAdminUsername / SeedAdminPassword: account created on an empty users table.
//   - CurrencySymbol: prefix for money values on documents.
//   - Timezone: IANA zone session timestamps are interpreted in.
//   - LogFormat / LogLevel: see logging.New.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     report archive settings; an empty bucket disables archiving.
type Config struct {
	EndpointAddrHTTP            string        `env:"WORKLOG_HTTP_ADDR"`
	DatabaseDriver              string        `env:"WORKLOG_DB_DRIVER"`
	DatabaseDSN                 string        `env:"WORKLOG_DB_DSN"`
	SecretKey                   string        `env:"WORKLOG_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"WORKLOG_TOKEN_TTL"`
	SeedAdminUsername           string        `env:"WORKLOG_SEED_ADMIN_USER"`
	SeedAdminPassword           string        `env:"WORKLOG_SEED_ADMIN_PASSWORD"`
	CurrencySymbol              string        `env:"WORKLOG_CURRENCY"`
	Timezone                    string        `env:"WORKLOG_TIMEZONE"`
	LogFormat                   string        `env:"WORKLOG_LOG_FORMAT"`
	LogLevel                    string        `env:"WORKLOG_LOG_LEVEL"`
	S3RootUser                  string        `env:"WORKLOG_S3_USER"`
	S3RootPassword              string        `env:"WORKLOG_S3_PASSWORD"`
	S3Bucket                    string        `env:"WORKLOG_S3_BUCKET"`
	S3Region                    string        `env:"WORKLOG_S3_REGION"`
	S3BaseEndpoint              string        `env:"WORKLOG_S3_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and seed password are insecure and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "worklog.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.SeedAdminUsername = "admin"
	c.SeedAdminPassword = "admin123"
	c.CurrencySymbol = "R$"
	c.Timezone = "Local"
	c.LogFormat = "json"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
