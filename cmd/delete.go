package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ojtlog/internal/timeutil"
	"ojtlog/storage"

	"github.com/spf13/cobra"
)

var (
	deleteUser  string
	deleteEntry string
	deleteDay   string
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one entry or every entry of a day",
	Long: `Destructive cleanup command for one account.

Pass --entry to delete a single entry with its tasks, or --day to delete every entry
logged on that date. Before deletion, an interactive security prompt requires typing
exactly "Y".`,
	Example: `
  # Delete one entry
  ojtlog delete --user student@example.com --entry 4c0a9e4e-3f0c-4f4b-9d1e-2b8f9b6f0f11

  # Delete everything logged on a day
  ojtlog delete --user student@example.com --day 2024-06-10
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (deleteEntry == "") == (deleteDay == "") {
			return fmt.Errorf("pass exactly one of --entry or --day")
		}

		_, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := lookupUser(cmd.Context(), store, deleteUser)
		if err != nil {
			return err
		}

		target := "entry " + deleteEntry
		if deleteDay != "" {
			target = "all entries on " + deleteDay
		}
		confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, target)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		deleted, err := deleteEntries(cmd.Context(), store, user.ID, deleteEntry, deleteDay)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted entries: %d\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteUser, "user", "", "Account email")
	deleteCmd.Flags().StringVar(&deleteEntry, "entry", "", "Entry id to delete")
	deleteCmd.Flags().StringVar(&deleteDay, "day", "", "Delete every entry on this date (YYYY-MM-DD)")

	_ = deleteCmd.MarkFlagRequired("user")
}

func confirmDeletePrompt(input io.Reader, output io.Writer, target string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete %s? Type Y to confirm: ", target); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

// deleteEntries removes one entry by id, or every entry on day.
func deleteEntries(ctx context.Context, store *storage.Store, owner, entryID, day string) (int, error) {
	if entryID != "" {
		if err := store.DeleteEntry(ctx, owner, entryID); err != nil {
			return 0, err
		}
		return 1, nil
	}

	date, err := timeutil.ParseDay(day)
	if err != nil {
		return 0, fmt.Errorf("invalid --day %q (expected YYYY-MM-DD)", day)
	}
	entries, err := store.ListEntriesInRange(ctx, owner, storage.DateRange{From: date, To: date})
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		if err := store.DeleteEntry(ctx, owner, entry.ID); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}
