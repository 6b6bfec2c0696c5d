package config

import (
	"encoding/json"
	"os"

	"github.com/Zhanerrke588595/it-events/internal/flagx"
	"github.com/Zhanerrke588595/it-events/internal/timex"
)

// JsonConfig is the JSON form of Config. CacheTTL accepts "30s" or
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddr  string         `json:"endpoint_addr"`
	DatabaseDSN   string         `json:"database_dsn"`
	RedisAddr     string         `json:"redis_addr"`
	CacheTTL      timex.Duration `json:"cache_ttl"`
	AdminEmail    string         `json:"admin_email"`
	AdminPassword string         `json:"admin_password"`
}

// parseJson overlays config with the non-empty values of the JSON file
// named by -c or -config. Read or decode errors panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddr, c.EndpointAddr)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.RedisAddr, c.RedisAddr)
	if c.CacheTTL.Duration > 0 {
		config.CacheTTL = c.CacheTTL.Duration
	}
	overlay(&config.AdminEmail, c.AdminEmail)
	overlay(&config.AdminPassword, c.AdminPassword)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
