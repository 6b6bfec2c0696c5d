// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the events backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps documents in memory.
//   - RedisAddr: redis address of the read cache. Empty disables caching.
//   - CacheTTL: lifetime of cached documents.
//   - AdminEmail / AdminPassword: account seeded on start-up when no user
//     with that email exists. An empty password disables seeding.
type Config struct {
	EndpointAddr  string
	DatabaseDSN   string
	RedisAddr     string
	CacheTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.DatabaseDSN = ""
	c.RedisAddr = ""
	c.CacheTTL = 1 * time.Minute
	c.AdminEmail = "admin@it-events.local"
	c.AdminPassword = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
