package tasks

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/taskflow/internal/calendar"
	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/config"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/storage/sqlite"
	"github.com/julianstephens/taskflow/internal/utils"
	"github.com/julianstephens/taskflow/internal/validation"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultConfig()
	cfg.Backups.Enabled = false

	ctx := cli.NewContext(store, cfg, dir)
	ctx.Now = func() time.Time { return time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC) }
	return ctx
}

func onlyTask(t *testing.T, ctx *cli.Context, includeCompleted bool) models.Task {
	t.Helper()
	tasks, err := ctx.Store.GetAllTasks(ctx.UserID(), includeCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	return tasks[0]
}

func TestTaskAdd(t *testing.T) {
	ctx := setupTestContext(t)

	cmd := &TaskAddCmd{Title: "Pay rent", Due: "2024-02-29", At: "09:00", Priority: "2"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}

	task := onlyTask(t, ctx, false)
	if task.Priority != models.PriorityMedium {
		t.Errorf("expected medium priority, got %d", task.Priority)
	}
	if task.DueDate == nil || utils.FormatDate(*task.DueDate) != "2024-02-29" {
		t.Errorf("unexpected due date %v", task.DueDate)
	}

	// Unknown priorities fall back to low.
	if err := (&TaskAddCmd{Title: "Water plants", Priority: "7"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	tasks, err := ctx.Store.GetAllTasks(ctx.UserID(), false)
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range tasks {
		if task.Title == "Water plants" && task.Priority != models.PriorityLow {
			t.Errorf("expected low priority fallback, got %d", task.Priority)
		}
	}

	err = (&TaskAddCmd{Title: "", Due: "tomorrow"}).Run(ctx)
	if !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestTaskEdit(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&TaskAddCmd{Title: "Draft", Due: "2024-03-01", Priority: "3"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	task := onlyTask(t, ctx, false)

	title := "Final draft"
	priority := "1"
	empty := ""
	cmd := &TaskEditCmd{ID: task.ID, Title: &title, Priority: &priority, Due: &empty}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("task edit failed: %v", err)
	}

	got := onlyTask(t, ctx, false)
	if got.Title != "Final draft" || got.Priority != models.PriorityHigh {
		t.Errorf("edit not applied: %+v", got)
	}
	if got.DueDate != nil {
		t.Errorf("expected due date cleared, got %v", got.DueDate)
	}

	bad := "31/12"
	if err := (&TaskEditCmd{ID: task.ID, Due: &bad}).Run(ctx); !errors.Is(err, validation.ErrInvalid) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestTaskDoneToggles(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&TaskAddCmd{Title: "Laundry", Priority: "3"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	task := onlyTask(t, ctx, false)

	if err := (&TaskDoneCmd{ID: task.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := onlyTask(t, ctx, true)
	if !got.Completed || got.CompletedAt == nil {
		t.Errorf("expected completed task, got %+v", got)
	}

	if err := (&TaskDoneCmd{ID: task.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got = onlyTask(t, ctx, false)
	if got.Completed || got.CompletedAt != nil {
		t.Errorf("expected reopened task, got %+v", got)
	}

	if err := (&TaskListCmd{All: true, ShowIDs: true}).Run(ctx); err != nil {
		t.Errorf("task list failed: %v", err)
	}
}

func TestTaskDelete(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&TaskAddCmd{Title: "Temp", Priority: "3"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	task := onlyTask(t, ctx, false)

	if err := (&TaskDeleteCmd{ID: task.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("task delete failed: %v", err)
	}
	if err := (&TaskDeleteCmd{ID: task.ID, Yes: true}).Run(ctx); err == nil {
		t.Error("expected error deleting a missing task")
	}
}

func TestRenderMonth(t *testing.T) {
	due := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{{ID: "t1", Title: "Flowers", DueDate: &due, Priority: models.PriorityHigh}}
	today := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	view, err := calendar.Month(2024, time.February, today, tasks)
	if err != nil {
		t.Fatal(err)
	}
	out := renderMonth(view)

	for _, want := range []string{"February 2024", "Mo Tu We Th Fr Sa Su", "Feb 14 ○ Flowers (High Priority)", "--year 2024 --month 1", "--year 2024 --month 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCalendarCmd(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&CalendarCmd{}).Run(ctx); err != nil {
		t.Errorf("calendar failed: %v", err)
	}
	if err := (&CalendarCmd{Year: 2023, Month: 12}).Run(ctx); err != nil {
		t.Errorf("calendar for explicit month failed: %v", err)
	}
	if err := (&CalendarCmd{Month: 13}).Run(ctx); err == nil {
		t.Error("expected error for month 13")
	}
}
