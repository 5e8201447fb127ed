package cmd

import (
	"context"
	"strings"
	"testing"
)

func TestLoadStatsView_UsesDefaultTarget(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	store := openTestStore(t, cfg)
	user := mustUser(t, store, "student@example.com")
	mustEntry(t, store, user.ID, "2024-06-10")
	mustEntry(t, store, user.ID, "2024-05-02")

	view, err := loadStatsView(context.Background(), store, user, 16)
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	if view.Name != "Juan" || view.Stats.CompletedHours != 8 || view.Stats.ProgressPercentage != 50 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Months) != 2 || view.Months[0].Month != "Jun 2024" {
		t.Fatalf("unexpected months: %+v", view.Months)
	}

	rendered := renderStats(view)
	for _, want := range []string{"OJT progress: Juan", "8 hrs", "50.0%", "Development/Coding", "May 2024"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in rendered stats:\n%s", want, rendered)
		}
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	t.Parallel()

	if got := strings.Count(progressBar(150, 10), "█"); got != 10 {
		t.Fatalf("expected full bar, got %d cells", got)
	}
	if got := strings.Count(progressBar(0, 10), "░"); got != 10 {
		t.Fatalf("expected empty bar, got %d cells", got)
	}
}
