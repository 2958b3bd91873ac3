// Package config loads runtime configuration for the fintrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables FINTRACK_*, after loading an optional .env file
//     from the working directory.
//  3. Optional JSON file selected with -c/-config or $FINTRACK_CONFIG.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     backend base URL including the version prefix
//	-cur string   currency for dashboard figures (ARS, USD, cARS; any letter case)
//	-db string    path of the local SQLite database
//	-store string durable token storage: sqlite or keyring
//	-t int        request timeout (seconds)
//	-log string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations may be strings like "15s" or integer nanoseconds. Keys that are
// absent leave the earlier value in place:
//
//	{
//	  "api_base_url": "http://localhost:8000/api/v1",
//	  "currency": "ARS",
//	  "database_path": "fintrack.db",
//	  "durable_store": "sqlite",
//	  "request_timeout": "15s",
//	  "requests_per_second": 10,
//	  "retries": 2,
//	  "password_change_policy": "keep",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Malformed JSON, flags or environment values panic, as they would leave
// the client in a state nobody asked for.
package config
