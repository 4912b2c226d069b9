package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by status (COMPLETED or QUEUED)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only records created on or after this day (YYYY-MM-DD)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records to show")
	rootCmd.AddCommand(historyCmd)
}

var (
	historyStatus string
	historySince  string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "List recorded timers",
	RunE:    runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	timers, err := c.ListTimers(strings.ToUpper(historyStatus), historySince, historyLimit)
	if err != nil {
		return err
	}

	if len(timers) == 0 {
		fmt.Println("No recorded timers yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tELAPSED\tTASK\tTAGS\tWHEN")
	for _, t := range timers {
		when := t.CreatedAt
		if !t.CompletedAt.IsZero() {
			when = t.CompletedAt
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Status,
			formatClock(t.Elapsed()),
			t.Task,
			strings.Join(t.Tags, ","),
			when.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}
