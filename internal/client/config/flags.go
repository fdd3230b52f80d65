package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/focuskeeper/internal/flagx"
)

// ValueFlags lists the flags that consume the following argument. Command
// parsing uses it to tell flag values from positional arguments.
var ValueFlags = []string{"-a", "-t", "-k", "-c", "-config", "--config"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the server
//	-t int      request timeout in seconds
//	-k string   token file path
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.TokenFile, "k", cfg.TokenFile, "token file path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
