package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/steptrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API (default from Config)
//	-d string   path of the local SQLite cache file
//	-i int      auto counter flush interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "base URL of the backend API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local cache database")
	autoFlushInterval := fs.Int("i", int(cfg.AutoFlushInterval.Seconds()), "auto counter flush interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AutoFlushInterval = time.Duration(*autoFlushInterval) * time.Second
}
