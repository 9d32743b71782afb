package main

import (
	"os"

	"github.com/stackinit/stackinit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
