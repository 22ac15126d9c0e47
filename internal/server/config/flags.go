package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/flagx"
)

// serverFlags lists the short flags owned by parseFlags.
var serverFlags = []string{"-a", "-d", "-s", "-t", "-k", "-secure", "-m"}

// serverBoolFlags never consume the following argument.
var serverBoolFlags = []string{"-secure"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret key
//	-t int      access token validity, minutes
//	-k int      bcrypt cost
//	-secure     mark cookies Secure; only -secure=false turns it off
//	            ("-secure false" leaves it on and drops "false")
//	-m string   gin mode
//
// args are filtered through flagx.FilterArgs first so that flags belonging
// to other parsers (such as -c) do not cause errors. A malformed value panics.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.SecureCookies, "secure", config.SecureCookies, "set the Secure attribute on cookies")
	fs.StringVar(&config.GinMode, "m", config.GinMode, "gin mode")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags, serverBoolFlags...)); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*validity) * time.Minute
		}
	})
}
