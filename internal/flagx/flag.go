// Package flagx lets components share os.Args: each config layer picks out
// only the flags it owns before parsing, so the server, the client and the
// JSON config loader never trip over each other's flag sets.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// Pick returns the subset of args belonging to the named flags, keeping
// both "-f value" and "-f=value" forms intact.
func Pick(args []string, names ...string) []string {
	owned := make(map[string]struct{}, len(names))
	for _, n := range names {
		owned[n] = struct{}{}
	}

	picked := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := owned[name]; ok {
				picked = append(picked, arg)
			}
			continue
		}

		if _, ok := owned[arg]; ok {
			picked = append(picked, arg)
			// a following non-flag token is this flag's value
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				picked = append(picked, args[i+1])
				i++
			}
		}
	}
	return picked
}

// ConfigFile extracts the JSON config file path given via -c or -config.
// Returns an empty string when neither flag is present.
func ConfigFile() string {
	var path string

	fs := flag.NewFlagSet("configfile", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(Pick(os.Args[1:], "-c", "-config"))

	return path
}
