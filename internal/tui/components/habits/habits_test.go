package habits

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/tracker"
)

func TestRenderWindow(t *testing.T) {
	today := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	logs := []models.HabitLog{
		{HabitID: "h", Date: today, Completed: true, CompletionCount: 1},
	}

	daily := RenderWindow(tracker.BuildWindow(models.FrequencyDaily, logs, today))
	if strings.Count(daily, "●") != 1 || strings.Count(daily, "○") != 6 {
		t.Errorf("unexpected daily window %q", daily)
	}

	weekly := RenderWindow(tracker.BuildWindow(models.FrequencyWeekly, logs, today))
	if !strings.Contains(weekly, "W1") {
		t.Errorf("expected ISO week label in %q", weekly)
	}

	monthly := RenderWindow(tracker.BuildWindow(models.FrequencyMonthly, logs, today))
	for _, abbrev := range []string{"Nov", "Dec", "Jan"} {
		if !strings.Contains(monthly, abbrev) {
			t.Errorf("expected %s in %q", abbrev, monthly)
		}
	}

	if got := RenderWindow(nil); !strings.Contains(got, "no progress tracking") {
		t.Errorf("unexpected empty window %q", got)
	}
}

func TestItemTitle(t *testing.T) {
	item := Item{View: tracker.HabitView{
		Habit:          models.Habit{Title: "Run"},
		Streak:         3,
		CompletedToday: true,
	}}
	if got := item.Title(); got != "✓ Run  🔥 3" {
		t.Errorf("unexpected title %q", got)
	}

	item.View.Streak = 0
	item.View.CompletedToday = false
	if got := item.Title(); got != "○ Run" {
		t.Errorf("unexpected title %q", got)
	}
}
