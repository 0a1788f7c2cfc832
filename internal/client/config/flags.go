package config

import (
	"flag"
	"os"
	"time"

	"zorgkaart/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend server
//	-i int      search debounce, milliseconds
func parseFlags(cfg *Config) {
	args := flagx.Pick(os.Args[1:], "-a", "-i")

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	debounce := fs.Int("i", int(cfg.SearchDebounce.Milliseconds()), "search debounce (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SearchDebounce = time.Duration(*debounce) * time.Millisecond
}
