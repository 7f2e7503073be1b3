// Package main is the entry point for the hanzinum CLI.
package main

import (
	"os"

	"github.com/f3rmion/hanzinum/cmd/hanzinum/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
