package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resumeCmd)
}

var resumeCmd = &cobra.Command{
	Use:   "resume ID",
	Short: "Resume a queued timer",
	Long:  `Replace the current timer with a queued one and start it. Use 'tempo history --status QUEUED' to find queued timers.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runResume,
}

func runResume(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	t, err := c.Resume(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Resumed %q, %s left\n", t.Task, formatClock(t.RemainingTime))
	return nil
}
