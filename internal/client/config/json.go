package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
	"github.com/dmitrijs2005/fintrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	Currency             *string         `json:"currency"`
	DatabasePath         *string         `json:"database_path"`
	DurableStore         *string         `json:"durable_store"`
	KeyringService       *string         `json:"keyring_service"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	RequestsPerSecond    *float64        `json:"requests_per_second"`
	Retries              *int            `json:"retries"`
	PasswordChangePolicy *string         `json:"password_change_policy"`
	LogLevel             *string         `json:"log_level"`
	LogFormat            *string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args or
// by $FINTRACK_CONFIG. It does nothing when neither is set and panics on
// read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	set := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(jc.APIBaseURL, &cfg.APIBaseURL)
	set(jc.Currency, &cfg.Currency)
	set(jc.DatabasePath, &cfg.DatabasePath)
	set(jc.DurableStore, &cfg.DurableStore)
	set(jc.KeyringService, &cfg.KeyringService)
	set(jc.PasswordChangePolicy, &cfg.PasswordChangePolicy)
	set(jc.LogLevel, &cfg.LogLevel)
	set(jc.LogFormat, &cfg.LogFormat)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.Retries != nil {
		cfg.Retries = *jc.Retries
	}
}
