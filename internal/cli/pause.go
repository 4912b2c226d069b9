package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pauseCmd)
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the current timer",
	RunE:  runPause,
}

func runPause(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	t, err := c.Pause()
	if err != nil {
		return err
	}

	fmt.Printf("Paused at %s\n", formatClock(t.RemainingTime))
	return nil
}
