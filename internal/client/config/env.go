package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvAPIBaseURL     = "FINTRACK_API_URL"
	EnvCurrency       = "FINTRACK_CURRENCY"
	EnvDatabasePath   = "FINTRACK_DB"
	EnvDurableStore   = "FINTRACK_STORE"
	EnvKeyringService = "FINTRACK_KEYRING_SERVICE"
	EnvRequestTimeout = "FINTRACK_TIMEOUT"
	EnvRPS            = "FINTRACK_RPS"
	EnvRetries        = "FINTRACK_RETRIES"
	EnvPasswordPolicy = "FINTRACK_PASSWORD_POLICY"
	EnvLogLevel       = "FINTRACK_LOG_LEVEL"
	EnvLogFormat      = "FINTRACK_LOG_FORMAT"
)

// loadEnv overlays cfg with the FINTRACK_* variables that are set.
func loadEnv(cfg *Config, getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str(EnvAPIBaseURL, &cfg.APIBaseURL)
	str(EnvCurrency, &cfg.Currency)
	str(EnvDatabasePath, &cfg.DatabasePath)
	str(EnvDurableStore, &cfg.DurableStore)
	str(EnvKeyringService, &cfg.KeyringService)
	str(EnvPasswordPolicy, &cfg.PasswordChangePolicy)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvLogFormat, &cfg.LogFormat)

	if v := strings.TrimSpace(getenv(EnvRequestTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvRequestTimeout, err))
		}
		cfg.RequestTimeout = d
	}
	if v := strings.TrimSpace(getenv(EnvRPS)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvRPS, err))
		}
		cfg.RequestsPerSecond = f
	}
	if v := strings.TrimSpace(getenv(EnvRetries)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvRetries, err))
		}
		cfg.Retries = n
	}
}
