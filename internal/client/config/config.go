package config

import "time"

// Config holds runtime settings for the events CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the REST backend, e.g. "http://127.0.0.1:8080".
//   - RequestTimeout: upper bound for a single command's backend calls.
//   - StoragePath: sqlite file that keeps the session token between runs.
//   - S3*: optional object storage for event images; images are inlined as
//     data URLs when S3Bucket is empty.
//   - LogLevel: zerolog level name.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	StoragePath    string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.StoragePath = "it-events.db"
	c.S3Region = "us-east-1"
	c.LogLevel = "warn"
}

// S3Enabled reports whether image uploads go to object storage.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
