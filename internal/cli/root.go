// Package cli implements the tempo command-line interface using Cobra.
// Every subcommand except serve is a thin client of the daemon's HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "tempo is a focus timer with tasks, tags and routines",
	Long: `tempo runs focus sessions from the command line.
Start the daemon with 'tempo serve', then drive the timer with
start/pause/add/task/tag, finish with complete, or stash it with queue.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var rootAddr string

func init() {
	rootCmd.PersistentFlags().StringVar(&rootAddr, "addr", "", "daemon address (overrides config, e.g. http://127.0.0.1:7313)")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
