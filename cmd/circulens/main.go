// Command circulens is the CLI entry point.
package main

import (
	"os"

	"github.com/circulens/circulens/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func run() error {
	return cli.NewRootCmd(version).Execute()
}

func main() {
	if err := run(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}
