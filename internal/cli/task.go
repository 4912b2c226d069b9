package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	taskCmd.Flags().BoolVar(&taskCommit, "commit", false, "Promote the staged task to the active task")
	rootCmd.AddCommand(taskCmd)
}

var taskCommit bool

var taskCmd = &cobra.Command{
	Use:   "task [TEXT...]",
	Short: "Stage or commit the timer's task",
	Long: `Stage a task description on the current timer. Staged text becomes the
active task when the timer next starts, or immediately with --commit.`,
	RunE: runTask,
}

func runTask(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		if _, err := c.EditTask(strings.Join(args, " ")); err != nil {
			return err
		}
	}

	if taskCommit {
		t, err := c.CommitTask()
		if err != nil {
			return err
		}
		fmt.Printf("Task: %s\n", t.Task)
		return nil
	}

	if len(args) == 0 {
		return cmd.Help()
	}
	fmt.Println("Task staged")
	return nil
}
