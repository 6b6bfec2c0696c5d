package config

import (
	"time"

	"github.com/Zhanerrke588595/it-events/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-r string   redis address
//	-ttl int    cache TTL, seconds
//	-ae string  seeded admin email
//	-ap string  seeded admin password
func parseFlags(config *Config) {
	fs, args := flagx.NewFlagSet("main", "-a", "-d", "-r", "-ttl", "-ae", "-ap")

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	cacheTTL := fs.Int("ttl", int(config.CacheTTL.Seconds()), "cache TTL (in seconds)")
	fs.StringVar(&config.AdminEmail, "ae", config.AdminEmail, "admin email")
	fs.StringVar(&config.AdminPassword, "ap", config.AdminPassword, "admin password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CacheTTL = time.Duration(*cacheTTL) * time.Second
}
