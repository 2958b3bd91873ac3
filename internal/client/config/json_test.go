package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/flagx"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	t.Setenv(flagx.ConfigEnv, "")

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":    "https://fin.example.com/api/v1",
		"request_timeout": "10s",
		"retries":         0,
	})
	pathEnv := writeTempJSON(t, dir, "env.json", map[string]any{
		"currency": "CARS",
	})

	t.Run("loads from flags", func(t *testing.T) {
		cfg := defaults()
		parseJson(cfg, []string{"-config", pathFlag})

		want := defaults()
		want.APIBaseURL = "https://fin.example.com/api/v1"
		want.RequestTimeout = 10 * time.Second
		want.Retries = 0
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("loads from env", func(t *testing.T) {
		t.Setenv(flagx.ConfigEnv, pathEnv)
		cfg := defaults()
		parseJson(cfg, nil)
		assert.Equal(t, "CARS", cfg.Currency)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		cfg := defaults()
		parseJson(cfg, []string{"-a", "http://other"})
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(defaults(), []string{"-c", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(defaults(), []string{"-c", filepath.Join(dir, "nope.json")}) })
	})
}
