package config

import (
	"time"

	"github.com/Zhanerrke588595/it-events/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Unknown flags are filtered out by flagx so other components can share
// os.Args. A malformed value panics.
func parseFlags(cfg *Config) {
	fs, args := flagx.NewFlagSet("main", "-a", "-t", "-db", "-l")

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoragePath, "db", cfg.StoragePath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
