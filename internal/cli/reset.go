package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the current timer and start fresh",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	t, err := c.Reset()
	if err != nil {
		return err
	}

	fmt.Printf("Fresh timer, %s\n", formatClock(t.RemainingTime))
	return nil
}
