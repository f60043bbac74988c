// file: cmd/apiprobe/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"

	"apiprobe/cmd/apiprobe/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "apiprobe",
	Short: "A test-automation helper for probing OAuth-protected REST APIs.",
	Long: `apiprobe keeps a client-credentials bearer token fresh in the background and
uses it to call the GitHub REST API. It can print the current token, fetch user
profiles, run a one-shot plan of API checks, or monitor an API on a schedule.`,
	// If a subcommand is not provided, default to showing help.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config/apiprobe.yaml", "Path to the config file")

	// Add all subcommands from the cmd package
	cmd.AddCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, so we just need to exit
		os.Exit(1)
	}
}
