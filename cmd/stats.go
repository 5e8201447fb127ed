package cmd

import (
	"context"
	"fmt"
	"strings"

	"ojtlog/hours"
	"ojtlog/ojt"
	"ojtlog/report"
	"ojtlog/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statsUser string

const progressBarWidth = 30

var (
	statsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)

	statsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress against the required hours",
	Long: `Print completed and remaining hours, the progress bar, and the per-category and
per-month breakdowns for one account. The target comes from the account settings and
falls back to tracking.default_required_hours.`,
	Example: `
  # Show progress
  ojtlog stats --user student@example.com
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := openConfiguredStore()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := lookupUser(cmd.Context(), store, statsUser)
		if err != nil {
			return err
		}

		view, err := loadStatsView(cmd.Context(), store, user, cfg.Tracking.DefaultRequiredHours)
		if err != nil {
			return err
		}
		fmt.Println(renderStats(view))
		return nil
	},
}

type statsView struct {
	Name       string
	Stats      ojt.Stats
	Categories []report.CategoryHours
	Months     []report.MonthHours
}

func loadStatsView(ctx context.Context, store *storage.Store, user ojt.User, defaultRequired float64) (statsView, error) {
	settings, err := store.GetOrCreateSettings(ctx, user.ID, ojt.Settings{
		UserID:        user.ID,
		RequiredHours: defaultRequired,
		StudentName:   user.Name,
	})
	if err != nil {
		return statsView{}, err
	}
	entries, err := store.ListEntries(ctx, user.ID)
	if err != nil {
		return statsView{}, err
	}

	stats, err := report.ComputeStats(entries, settings.RequiredHours)
	if err != nil {
		return statsView{}, err
	}

	name := settings.StudentName
	if name == "" {
		name = user.Email
	}
	return statsView{
		Name:       name,
		Stats:      stats,
		Categories: report.SortedCategories(report.CategoryBreakdown(entries), stats.CompletedHours),
		Months:     report.SortedMonths(report.MonthlyBreakdown(entries)),
	}, nil
}

func renderStats(view statsView) string {
	line := func(label, value string) string {
		return statsLabelStyle.Render(fmt.Sprintf("%-20s", label)) + statsValueStyle.Render(value)
	}

	lines := []string{
		statsTitleStyle.Render("OJT progress: " + view.Name),
		"",
		line("Completed", hours.FormatHoursMinutes(view.Stats.CompletedHours)),
		line("Remaining", hours.FormatDaysHoursMinutes(view.Stats.RemainingHours)),
		line("Target", hours.FormatDecimal(view.Stats.RequiredHours)+" hrs"),
		line("Entries", fmt.Sprintf("%d", view.Stats.EntryCount)),
		progressBar(view.Stats.ProgressPercentage, progressBarWidth) + fmt.Sprintf(" %.1f%%", view.Stats.ProgressPercentage),
	}

	if len(view.Categories) > 0 {
		lines = append(lines, "", statsTitleStyle.Render("By category"))
		for _, category := range view.Categories {
			lines = append(lines, line(string(category.Category), fmt.Sprintf("%s hrs (%.0f%%)", hours.FormatDecimal(category.Hours), category.Share)))
		}
	}
	if len(view.Months) > 0 {
		lines = append(lines, "", statsTitleStyle.Render("By month"))
		for _, month := range view.Months {
			lines = append(lines, line(month.Month, hours.FormatDecimal(month.Hours)+" hrs"))
		}
	}

	return statsBoxStyle.Render(strings.Join(lines, "\n"))
}

func progressBar(percentage float64, width int) string {
	filled := int(percentage / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render(bar)
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsUser, "user", "", "Account email")
	_ = statsCmd.MarkFlagRequired("user")
}
