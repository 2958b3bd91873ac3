package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	withFlags := defaults()
	withFlags.APIBaseURL = "http://10.0.0.2:8000/api/v1"
	withFlags.Currency = "USD"
	withFlags.DatabasePath = "/tmp/ft.db"
	withFlags.DurableStore = "keyring"
	withFlags.RequestTimeout = 30 * time.Second
	withFlags.LogLevel = "debug"

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "http://10.0.0.2:8000/api/v1", "-cur", "USD", "-db", "/tmp/ft.db",
				"-store", "keyring", "-t", "30", "-log", "debug",
			},
			expected: withFlags,
		},
		{name: "foreign flags ignored", args: []string{"-c", "cfg.json", "-x", "1"}, expected: defaults()},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseFlags_TimeoutUntouchedWithoutFlag(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond
	parseFlags(cfg, nil)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}
