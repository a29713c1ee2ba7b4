package habits

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/config"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/storage/sqlite"
	"github.com/julianstephens/taskflow/internal/validation"
)

func setupTestContext(t *testing.T) (*cli.Context, *time.Time) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultConfig()
	cfg.Backups.Enabled = false

	now := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	ctx := cli.NewContext(store, cfg, dir)
	ctx.Now = func() time.Time { return now }
	return ctx, &now
}

func addHabit(t *testing.T, ctx *cli.Context, title, freq string) models.Habit {
	t.Helper()
	cmd := &HabitAddCmd{Title: title, Goal: "Do it", Frequency: freq}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
	habit, err := resolveHabit(ctx, title)
	if err != nil {
		t.Fatalf("resolveHabit failed: %v", err)
	}
	return habit
}

func TestHabitAdd(t *testing.T) {
	ctx, _ := setupTestContext(t)

	habit := addHabit(t, ctx, "Floss", "daily")
	if !habit.Active || habit.Frequency != models.FrequencyDaily || habit.GoalDescription != "Do it" {
		t.Errorf("unexpected habit %+v", habit)
	}
	// Default profile has no preference, so the reminder falls back to noon.
	if habit.ReminderTime == nil || *habit.ReminderTime != "12:00" {
		t.Errorf("expected default reminder 12:00, got %v", habit.ReminderTime)
	}

	err := (&HabitAddCmd{Title: "Bad", Goal: "x", Frequency: "daily", Reminder: "noon"}).Run(ctx)
	if !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHabitDoneAndStreak(t *testing.T) {
	ctx, now := setupTestContext(t)
	habit := addHabit(t, ctx, "Floss", "daily")

	start := *now
	for i := 0; i < 3; i++ {
		*now = start.AddDate(0, 0, i)
		if err := (&HabitDoneCmd{Habit: "floss"}).Run(ctx); err != nil {
			t.Fatalf("habit done failed: %v", err)
		}
	}

	streak, err := ctx.Tracker.GetStreak(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if streak != 3 {
		t.Errorf("expected streak 3, got %d", streak)
	}

	if err := (&HabitStreakCmd{Habit: habit.ID}).Run(ctx); err != nil {
		t.Errorf("habit streak failed: %v", err)
	}
	if err := (&HabitProgressCmd{Habit: habit.ID}).Run(ctx); err != nil {
		t.Errorf("habit progress failed: %v", err)
	}
	if err := (&HabitListCmd{All: true, ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("habit list failed: %v", err)
	}
}

func TestHabitDoneUnknown(t *testing.T) {
	ctx, _ := setupTestContext(t)

	err := (&HabitDoneCmd{Habit: "nope"}).Run(ctx)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveHabitAmbiguous(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addHabit(t, ctx, "Walk", "daily")
	if err := (&HabitAddCmd{Title: "walk", Goal: "again", Frequency: "weekly"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := resolveHabit(ctx, "WALK"); err == nil {
		t.Error("expected ambiguity error")
	}
}

func TestHabitPauseResume(t *testing.T) {
	ctx, _ := setupTestContext(t)
	habit := addHabit(t, ctx, "Stretch", "weekly")

	if err := (&HabitPauseCmd{Habit: habit.ID}).Run(ctx); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	views, err := ctx.Tracker.HabitViews(ctx.UserID(), ctx.Today())
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 0 {
		t.Errorf("paused habit should be hidden, got %d views", len(views))
	}

	// Paused habits still resolve by title.
	if err := (&HabitResumeCmd{Habit: "Stretch"}).Run(ctx); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	got, err := ctx.Store.GetHabit(habit.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Active {
		t.Error("expected habit to be active after resume")
	}
}

func TestHabitDelete(t *testing.T) {
	ctx, _ := setupTestContext(t)
	habit := addHabit(t, ctx, "Stretch", "daily")

	if err := (&HabitDeleteCmd{Habit: habit.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.Store.GetHabit(habit.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected habit to be gone, got %v", err)
	}
}
