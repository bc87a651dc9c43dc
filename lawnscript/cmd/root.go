// Package cmd provides the command-line interface for lawnscript.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "lawnscript",
	Short: "Lawnscript attaches to a running Plants vs. Zombies process " +
		"and drives scripted actions against its clock.",
	Long: `Lawnscript attaches to a running Plants vs. Zombies process, ` +
		`reads its board state, and runs a scheduler that dispatches ` +
		`scripted actions synchronized to the in-game clock.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
