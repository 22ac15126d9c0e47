package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
	"github.com/dmitrijs2005/taskboard/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON configuration file. Pointer
// fields distinguish "absent" from "zero", so a partial file only touches
// the settings it names. Durations accept "30m" as well as nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  *int            `json:"bcrypt_cost"`
	SecureCookies               *bool           `json:"secure_cookies"`
	GinMode                     *string         `json:"gin_mode"`
}

// parseJson overlays values from the JSON file named by -c/-config in args
// (or $TASKBOARD_CONFIG). Nothing happens when no file is named. An
// unreadable or invalid file panics: the server must not start half-configured.
func parseJson(config *Config, args []string, lookupEnv func(string) (string, bool)) {
	path := flagx.ConfigPath(args, lookupEnv)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.SecureCookies != nil {
		config.SecureCookies = *c.SecureCookies
	}
	if c.GinMode != nil {
		config.GinMode = *c.GinMode
	}
}
