package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	envAddr          = "TASKBOARD_ADDR"
	envDatabaseDSN   = "TASKBOARD_DATABASE_DSN"
	envSecretKey     = "TASKBOARD_SECRET_KEY"
	envTokenValidity = "TASKBOARD_ACCESS_TOKEN_VALIDITY"
	envBcryptCost    = "TASKBOARD_BCRYPT_COST"
	envSecureCookies = "TASKBOARD_SECURE_COOKIES"
	envGinMode       = "GIN_MODE"
)

// parseEnv loads dotenvPath into the process environment (a missing file is
// not an error; variables already set win) and then overlays recognised
// variables onto config. Values that fail to parse are ignored.
func parseEnv(config *Config, dotenvPath string, lookup func(string) (string, bool)) {
	if dotenvPath != "" {
		_ = godotenv.Load(dotenvPath)
	}

	if v, ok := lookup(envAddr); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
	if v, ok := lookup(envDatabaseDSN); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := lookup(envSecretKey); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := lookup(envTokenValidity); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := lookup(envBcryptCost); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
	if v, ok := lookup(envSecureCookies); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.SecureCookies = b
		}
	}
	if v, ok := lookup(envGinMode); ok && v != "" {
		config.GinMode = v
	}
}
