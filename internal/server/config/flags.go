package config

import (
	"flag"
	"os"
	"time"

	"zorgkaart/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line
// flags. Args are filtered through flagx.Pick first so the -c/-config flag
// handled by the JSON layer does not trip this flag set.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret
//	-w string   bcrypt digest of the shared access password
//	-t int      session validity, minutes
//	-r string   redis address for the geocode cache (empty disables)
//	-n string   Nominatim base URL
//	-g string   region appended to scoped place queries
func parseFlags(config *Config) {
	args := flagx.Pick(os.Args[1:], "-a", "-d", "-s", "-w", "-t", "-r", "-n", "-g")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.PasswordDigest, "w", config.PasswordDigest, "bcrypt digest of the access password")

	sessionValidity := fs.Int("t", int(config.SessionValidity.Minutes()), "session validity (in minutes)")

	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address for geocode cache")
	fs.StringVar(&config.NominatimBaseURL, "n", config.NominatimBaseURL, "nominatim base URL")
	fs.StringVar(&config.NominatimRegion, "g", config.NominatimRegion, "region for scoped place queries")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidity = time.Duration(*sessionValidity) * time.Minute
}
