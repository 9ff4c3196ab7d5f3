// Package main provides the CLI for bunkai sentence boundary disambiguation.
package main

import (
	"os"

	"github.com/leapstack-labs/bunkai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
