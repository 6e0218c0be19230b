package main

import (
	"os"

	"github.com/dcsystems/dcsite/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(embeddedFrontend).Execute(); err != nil {
		os.Exit(1)
	}
}
