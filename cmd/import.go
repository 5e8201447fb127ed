package cmd

import (
	"context"
	"fmt"

	"ojtlog/importer"
	"ojtlog/ojt"
	"ojtlog/reconcile"
	"ojtlog/storage"

	"github.com/spf13/cobra"
)

var (
	importInputs     []string
	importFormat     string
	importUser       string
	importSupervisor string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import CSV/Excel timesheets into an account",
	Long: `Read timesheet files and store their rows as entries of one account.

Recognised columns (case and spacing do not matter): Date, Time In, Time Out, Task,
Category, Status, Supervisor, Learning Outcome. Rows without a date or task, such as the
"TOTAL FOR" and "GRAND TOTAL" rows of an ojtlog export, are skipped. Rows that share a
date, supervisor and learning outcome become one entry; hours are derived from the times.
When --format is omitted, format is inferred from each input file extension.

Tasks already stored for the account (same day, times and name) are skipped, so importing
the same file twice is harmless. Imported tasks that overlap a stored task are listed.`,
	Example: `
  # Re-import an ojtlog Excel export
  ojtlog import -i OJT_Time_Logs_2024-06-15.xlsx --user student@example.com

  # Import a CSV without a Supervisor column
  ojtlog import -i ./june.csv --user student@example.com --supervisor "Ms. Cruz"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := lookupUser(cmd.Context(), store, importUser)
		if err != nil {
			return err
		}

		summary, err := importFiles(cmd.Context(), store, user, importInputs, importer.RunOptions{
			Format:            importFormat,
			DefaultSupervisor: importSupervisor,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Import completed. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Duplicates: %d, Entries stored: %d\n",
			summary.Result.FilesProcessed,
			summary.Result.RowsRead,
			summary.Result.RowsMapped,
			summary.Result.RowsSkipped,
			summary.Plan.Duplicates,
			summary.Stored,
		)
		printOverlaps(summary.Plan.Overlaps)
		return nil
	},
}

type importSummary struct {
	Result *importer.Result
	Plan   reconcile.Plan
	Stored int
}

// importFiles reads paths, drops tasks the user already has and stores the
// rest in one transaction.
func importFiles(ctx context.Context, store *storage.Store, user ojt.User, paths []string, options importer.RunOptions) (importSummary, error) {
	result, err := importer.Run(paths, options)
	if err != nil {
		return importSummary{}, err
	}

	existing, err := store.ListEntries(ctx, user.ID)
	if err != nil {
		return importSummary{}, err
	}
	plan, err := reconcile.PlanImport(result.Entries, existing)
	if err != nil {
		return importSummary{}, err
	}

	stored, err := store.ImportEntries(ctx, user.ID, plan.Entries)
	if err != nil {
		return importSummary{}, err
	}
	return importSummary{Result: result, Plan: plan, Stored: stored}, nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importUser, "user", "", "Account email that receives the entries")
	importCmd.Flags().StringVar(&importSupervisor, "supervisor", "", "Supervisor for rows without one")

	_ = importCmd.MarkFlagRequired("input")
	_ = importCmd.MarkFlagRequired("user")
}
