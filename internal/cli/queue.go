package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queueCmd)
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Queue the current timer for later",
	Long:  `Record the current timer as queued so it can be resumed later with 'tempo resume'. The timer must be paused and have a task.`,
	RunE:  runQueue,
}

func runQueue(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if _, err := c.Queue(); err != nil {
		return err
	}

	fmt.Println("Timer queued")
	return nil
}
