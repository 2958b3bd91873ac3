package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/client/session"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/joho/godotenv"
)

// Durable token storage backends.
const (
	StoreSQLite  = "sqlite"
	StoreKeyring = "keyring"
)

// Config holds runtime settings for the fintrack CLI.
type Config struct {
	APIBaseURL           string
	Currency             string
	DatabasePath         string
	DurableStore         string
	KeyringService       string
	RequestTimeout       time.Duration
	RequestsPerSecond    float64
	Retries              int
	PasswordChangePolicy string
	LogLevel             string
	LogFormat            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api/v1"
	c.Currency = models.CurrencyARS
	c.DatabasePath = "fintrack.db"
	c.DurableStore = StoreSQLite
	c.KeyringService = "fintrack"
	c.RequestTimeout = 15 * time.Second
	c.RequestsPerSecond = 10
	c.Retries = 2
	c.PasswordChangePolicy = session.KeepToken.String()
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig applies defaults, .env and environment, JSON and flags, in
// that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	// a missing .env is fine
	_ = godotenv.Load()

	loadEnv(cfg, os.Getenv)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}

// Validate reports every problem with c at once. A supported currency is
// rewritten to the spelling the backend expects.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.APIBaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid api base url %q: must be an absolute http(s) URL", c.APIBaseURL))
	}
	if code, ok := models.CanonicalCurrency(c.Currency); ok {
		c.Currency = code
	} else {
		problems = append(problems, fmt.Sprintf("unsupported currency %q: must be one of %s",
			c.Currency, strings.Join(models.SupportedCurrencies, ", ")))
	}
	switch c.DurableStore {
	case StoreSQLite:
		if c.DatabasePath == "" {
			problems = append(problems, "database path is required for the sqlite store")
		}
	case StoreKeyring:
		if c.KeyringService == "" {
			problems = append(problems, "keyring service is required for the keyring store")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid durable store %q: must be %s or %s", c.DurableStore, StoreSQLite, StoreKeyring))
	}
	if c.RequestTimeout < 0 {
		problems = append(problems, fmt.Sprintf("invalid request timeout %s: must not be negative", c.RequestTimeout))
	}
	if c.RequestsPerSecond < 0 {
		problems = append(problems, fmt.Sprintf("invalid requests per second %g: must not be negative", c.RequestsPerSecond))
	}
	if c.Retries < 0 {
		problems = append(problems, fmt.Sprintf("invalid retries %d: must not be negative", c.Retries))
	}
	if _, err := session.ParsePasswordPolicy(c.PasswordChangePolicy); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// PasswordPolicy returns the parsed password change policy; call Validate
// first.
func (c *Config) PasswordPolicy() session.PasswordPolicy {
	p, _ := session.ParsePasswordPolicy(c.PasswordChangePolicy)
	return p
}
