package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/worklog/internal/flagx"
)

// parseFlags populates Config from the -a, -i and -o flags. Other arguments
// are filtered out with flagx.FilterArgs. It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "worklog API base URL")
	timeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.ReportsDir, "o", cfg.ReportsDir, "directory for exported reports")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
