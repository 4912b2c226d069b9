package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	addCmd.Flags().BoolVar(&addMinutes, "minutes", false, "Interpret the amount as minutes")
	rootCmd.AddCommand(addCmd)
}

var addMinutes bool

var addCmd = &cobra.Command{
	Use:   "add SECONDS",
	Short: "Add time to the current timer",
	Long:  `Extend a paused timer by the given number of seconds (or minutes with --minutes).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	if addMinutes {
		amount *= 60
	}

	c, err := apiClient()
	if err != nil {
		return err
	}

	t, err := c.AddTime(amount)
	if err != nil {
		return err
	}

	fmt.Printf("Timer is now %s\n", formatClock(t.Duration))
	return nil
}
