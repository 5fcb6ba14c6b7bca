// Package cmd contains the commands of the circuit CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Series circuit calculator",
	Long: `circuit fills in the voltage, current, resistance and power of every
component in a series circuit that Ohm's law can derive from the values you
already know.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
