package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	routineUncheckCmd.Flags().StringVar(&routineUncheckDate, "date", "", "Day to clear, as YYYY-MM-DD (default today)")
	routineCmd.AddCommand(routineAddCmd)
	routineCmd.AddCommand(routineRmCmd)
	routineCmd.AddCommand(routineCheckCmd)
	routineCmd.AddCommand(routineUncheckCmd)
	rootCmd.AddCommand(routineCmd)
}

var routineUncheckDate string

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Manage daily routines",
	RunE:  runRoutineList,
}

func runRoutineList(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	routines, err := c.ListRoutines()
	if err != nil {
		return err
	}

	if len(routines) == 0 {
		fmt.Println("No routines. Run 'tempo routine add <name>' to get started.")
		return nil
	}

	today := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTODAY\tTOTAL")
	for _, r := range routines {
		done := " "
		if r.CompletedOn(today) {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%d\n", r.Name, done, len(r.Completions))
	}
	return w.Flush()
}

var routineAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a routine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := c.AddRoutine(args[0]); err != nil {
			return err
		}
		fmt.Printf("Added routine %q\n", args[0])
		return nil
	},
}

var routineRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a routine and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := c.DeleteRoutine(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed routine %q\n", args[0])
		return nil
	},
}

var routineCheckCmd = &cobra.Command{
	Use:   "check NAME",
	Short: "Mark a routine done for today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := c.CompleteRoutine(args[0]); err != nil {
			return err
		}
		fmt.Printf("Checked %q\n", args[0])
		return nil
	},
}

var routineUncheckCmd = &cobra.Command{
	Use:   "uncheck NAME",
	Short: "Clear a routine's completion for a day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}
		if err := c.DeleteCompletion(args[0], routineUncheckDate); err != nil {
			return err
		}
		fmt.Printf("Unchecked %q\n", args[0])
		return nil
	},
}
