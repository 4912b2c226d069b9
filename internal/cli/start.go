package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tempo-sh/tempo/internal/domain"
)

func init() {
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or pause the current timer",
	Long:  `Toggle the current timer: a paused timer starts counting down, a running timer pauses.`,
	RunE:  runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	t, err := c.Toggle()
	if err != nil {
		return err
	}

	if t.Status == domain.TimerRunning {
		fmt.Printf("Running, %s left\n", formatClock(t.RemainingTime))
	} else {
		fmt.Printf("Paused at %s\n", formatClock(t.RemainingTime))
	}
	return nil
}
