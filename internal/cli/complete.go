package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(completeCmd)
}

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete the current timer and record it",
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if _, err := c.Complete(); err != nil {
		return err
	}

	fmt.Println("Timer completed")
	return nil
}
