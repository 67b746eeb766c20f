// Package main is the entry point for the leapmeta CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapmeta/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
