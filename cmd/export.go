package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ojtlog/ojt"
	"ojtlog/output"
	"ojtlog/storage"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportUser   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a student's time logs to CSV/Excel",
	Long: `Export every entry of one account in the timesheet layout: one row per task,
a "TOTAL FOR" row and a blank row after each day, and a final "GRAND TOTAL" row.

Output format can be selected explicitly via --format or inferred from --output extension.
Without --output the file is named <export.filename_prefix>_YYYY-MM-DD.<ext> in the
current directory.`,
	Example: `
  # Export to CSV with the dated default name
  ojtlog export --user student@example.com

  # Export to Excel
  ojtlog export --user student@example.com --format excel

  # Export to an explicit path, format inferred from the extension
  ojtlog export --user student@example.com --output ./logs/june.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := lookupUser(cmd.Context(), store, exportUser)
		if err != nil {
			return err
		}

		path, rows, err := exportEntries(cmd.Context(), store, user, exportFormat, exportOutput, cfg.Export.FilenamePrefix, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Export completed. Entries: %d, File: %s\n", rows, path)
		return nil
	},
}

// exportEntries writes the user's entries and returns the file path and the
// number of entries written.
func exportEntries(ctx context.Context, store *storage.Store, user ojt.User, format, path, prefix string, now time.Time) (string, int, error) {
	if strings.TrimSpace(format) == "" {
		format = detectExportFormat(path)
	}
	writer, err := output.WriterForFormat(format)
	if err != nil {
		return "", 0, err
	}
	if strings.TrimSpace(path) == "" {
		path = output.Filename(prefix, writer.Extension(), now)
	}

	entries, err := store.ListEntries(ctx, user.ID)
	if err != nil {
		return "", 0, err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create export file: %w", err)
	}
	if err := writer.Write(file, entries); err != nil {
		_ = file.Close()
		return "", 0, err
	}
	if err := file.Close(); err != nil {
		return "", 0, fmt.Errorf("close export file: %w", err)
	}
	return path, len(entries), nil
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "xlsx", "xlsm":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportUser, "user", "", "Account email whose logs are exported")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: dated file in the current directory)")

	_ = exportCmd.MarkFlagRequired("user")
}
