package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func noEnv(string) (string, bool) { return "", false }

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	full := writeTempJSON(t, dir, "full.json", map[string]any{
		"endpoint_addr_http":             "www.example:9000",
		"database_dsn":                   "postgres://json",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "15m",
		"bcrypt_cost":                    11,
		"secure_cookies":                 false,
		"gin_mode":                       "debug",
	})
	partial := writeTempJSON(t, dir, "partial.json", map[string]any{
		"secret_key": "only-secret",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", full}, noEnv)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://json", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 11, cfg.BcryptCost)
		assert.False(t, cfg.SecureCookies)
		assert.Equal(t, "debug", cfg.GinMode)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-c", partial}, noEnv)

		assert.Equal(t, "only-secret", cfg.SecretKey)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
		assert.True(t, cfg.SecureCookies)
	})

	t.Run("path from environment", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, nil, func(k string) (string, bool) {
			if k == "TASKBOARD_CONFIG" {
				return partial, true
			}
			return "", false
		})
		assert.Equal(t, "only-secret", cfg.SecretKey)
	})

	t.Run("no config → no changes", func(t *testing.T) {
		cfg := &Config{EndpointAddrHTTP: "defaults:1234", SecretKey: "key"}
		parseJson(cfg, []string{"-a", ":1"}, noEnv)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}, noEnv) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}, noEnv) })
	})
}
