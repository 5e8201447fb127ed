package cmd

import (
	"fmt"

	"ojtlog/reconcile"

	"github.com/spf13/cobra"
)

var checkUser string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List tasks whose time spans overlap",
	Long: `Compare every task of one account with the other tasks logged on the same day and
list the pairs whose time in / time out spans intersect. Overlapping tasks count their
shared time twice in the progress totals.`,
	Example: `
  # List overlapping tasks
  ojtlog check --user student@example.com
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := lookupUser(cmd.Context(), store, checkUser)
		if err != nil {
			return err
		}
		entries, err := store.ListEntries(cmd.Context(), user.ID)
		if err != nil {
			return err
		}

		overlaps, err := reconcile.FindOverlaps(entries)
		if err != nil {
			return err
		}
		if len(overlaps) == 0 {
			fmt.Println("No overlapping tasks.")
			return nil
		}
		printOverlaps(overlaps)
		return nil
	},
}

func printOverlaps(overlaps []reconcile.Overlap) {
	if len(overlaps) == 0 {
		return
	}
	fmt.Printf("Overlapping tasks: %d\n", len(overlaps))
	for _, overlap := range overlaps {
		fmt.Println(formatOverlap(overlap))
	}
}

func formatOverlap(overlap reconcile.Overlap) string {
	return fmt.Sprintf("  %s  %s-%s %q overlaps %s-%s %q",
		overlap.Day,
		overlap.First.TimeIn, overlap.First.TimeOut, overlap.First.Name,
		overlap.Second.TimeIn, overlap.Second.TimeOut, overlap.Second.Name,
	)
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkUser, "user", "", "Account email")
	_ = checkCmd.MarkFlagRequired("user")
}
