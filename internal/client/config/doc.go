// Package config loads runtime configuration for the events CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend
//	-t int      request timeout (seconds)
//	-db string  path of the local session database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds. Only keys present in the file override defaults:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "storage_path": "it-events.db",
//	  "s3_bucket": "events",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin",
//	  "log_level": "info"
//	}
//
// S3 credentials are accepted from the JSON file only.
package config
