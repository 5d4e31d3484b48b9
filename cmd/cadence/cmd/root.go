// Package cmd provides the command-line interface for Cadence.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "cadence",
	Short: "Cadence CLI tool can perform common tasks related to running " +
		"and inspecting pacing loops.",
	Long: `Cadence CLI tool can perform common tasks related to running ` +
		`and inspecting pacing loops. Currently, it supports benchmarking ` +
		`the engine against a headless window.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
