// Package main is the entry point for aws-visibility CLI.
package main

import (
	"os"

	"aws-visibility/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
