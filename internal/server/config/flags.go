package config

import (
	"flag"
	"os"
	"time"

	"github.com/a-mean-h/recepie-api-app/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-i int      database wait probe interval, seconds
//	-w int      database wait timeout, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers in seconds and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	dbWaitInterval := fs.Int("i", int(config.DBWaitInterval.Seconds()), "db_wait_interval (in seconds)")
	dbWaitTimeout := fs.Int("w", int(config.DBWaitTimeout.Seconds()), "db_wait_timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DBWaitInterval = time.Duration(*dbWaitInterval) * time.Second
	config.DBWaitTimeout = time.Duration(*dbWaitTimeout) * time.Second
}
