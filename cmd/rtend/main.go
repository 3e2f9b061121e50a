// Package main is the entry point for the rtend CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/rtend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
