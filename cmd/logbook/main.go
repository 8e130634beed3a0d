// Command logbook records workouts and watched titles in a local SQLite log.
package main

import (
	"os"
)

var version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
