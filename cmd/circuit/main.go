// Package main is the entry point for the circuit CLI.
package main

import (
	"os"

	"electrician-pro/cmd/circuit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
