// Package cli implements the whisprtray CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "whisprtray",
	Short: "Tray indicator for the Whispr recorder",
	Long: `Whisprtray is a lightweight system tray indicator for the Whispr
recorder. It watches the recorder's shared state files and shows
recording, success, and error visuals without any live connection to
the recorder process.

Run without arguments to start the indicator.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndicator()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
