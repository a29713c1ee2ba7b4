package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/tracker"
	habitview "github.com/julianstephens/taskflow/internal/tui/components/habits"
	"github.com/julianstephens/taskflow/internal/validation"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits with streaks and progress."`
	Done     HabitDoneCmd     `cmd:"" help:"Record today's completion of a habit."`
	Streak   HabitStreakCmd   `cmd:"" help:"Show the current streak of a habit."`
	Progress HabitProgressCmd `cmd:"" help:"Show the progress window of a habit."`
	Pause    HabitPauseCmd    `cmd:"" help:"Pause a habit so it is hidden from the dashboard."`
	Resume   HabitResumeCmd   `cmd:"" help:"Resume a paused habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and its history."`
}

// resolveHabit finds a habit by ID or, failing that, by case-insensitive title.
func resolveHabit(ctx *cli.Context, ref string) (models.Habit, error) {
	habit, err := ctx.Store.GetHabit(ref)
	if err == nil {
		return habit, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}

	all, err := ctx.Store.GetAllHabits(ctx.UserID(), true)
	if err != nil {
		return models.Habit{}, err
	}
	var matches []models.Habit
	for _, h := range all {
		if strings.EqualFold(h.Title, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%d habits are titled %q, use the ID instead", len(matches), ref)
	}
}

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Goal      string `help:"Goal description." required:""`
	Frequency string `help:"daily, weekly, monthly, quarterly or custom." default:"daily" enum:"daily,weekly,monthly,quarterly,custom"`
	Reminder  string `help:"Reminder time in HH:MM format (default: recommended for your profile)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	in := validation.HabitInput{
		Title:           c.Title,
		GoalDescription: c.Goal,
		Frequency:       c.Frequency,
		ReminderTime:    c.Reminder,
	}
	if profile, err := ctx.Store.GetProfile(ctx.UserID()); err == nil {
		in = in.WithDefaultReminder(profile)
	}
	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    ctx.UserID(),
		Active:    true,
		CreatedAt: ctx.Now(),
	}
	if err := in.Apply(&habit); err != nil {
		return err
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Title, habit.Frequency.Label())
	fmt.Printf("  ID: %s\n", habit.ID)
	return nil
}

type HabitListCmd struct {
	All     bool `help:"Include paused habits."`
	ShowIDs bool `help:"Show habit IDs." name:"show-ids"`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	views, err := ctx.Tracker.HabitViews(ctx.UserID(), ctx.Today())
	if err != nil {
		return err
	}

	var paused []models.Habit
	if c.All {
		all, err := ctx.Store.GetAllHabits(ctx.UserID(), true)
		if err != nil {
			return err
		}
		for _, h := range all {
			if !h.Active {
				paused = append(paused, h)
			}
		}
	}

	if len(views) == 0 && len(paused) == 0 {
		fmt.Println("No habits found. Add one with 'taskflow habit add'.")
		return nil
	}

	sum := tracker.Summarize(views)
	fmt.Printf("Habits: %d active, %d done today, %d total streak\n\n", sum.TotalHabits, sum.CompletedToday, sum.TotalStreak)
	for _, v := range views {
		mark := "○"
		if v.CompletedToday {
			mark = "✓"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", v.Habit.ID)
		}
		fmt.Printf("  %s %s%s - %s, streak %d\n", mark, v.Habit.Title, idStr, v.Habit.Frequency.Label(), v.Streak)
		fmt.Printf("      %s\n", habitview.RenderWindow(v.Progress))
	}
	for _, h := range paused {
		fmt.Printf("  ⏸ %s [PAUSED]\n", h.Title)
	}
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	result, err := ctx.Tracker.RecordCompletion(habit.ID, ctx.Today())
	if err != nil {
		return err
	}

	if result.Created {
		fmt.Printf("✓ %s done for today. Streak: %d\n", habit.Title, result.Streak)
	} else {
		fmt.Printf("✓ %s logged again today (x%d). Streak: %d\n", habit.Title, result.Log.CompletionCount, result.Streak)
	}
	if a := result.Achievement; a != nil {
		fmt.Printf("\n%s Achievement unlocked: %s\n   %s\n", a.Badge, a.Title, a.Description)
	}
	return nil
}

type HabitStreakCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if !habit.Frequency.Supported() {
		fmt.Printf("%s: streaks are not tracked for %s habits\n", habit.Title, strings.ToLower(habit.Frequency.Label()))
		return nil
	}

	streak, err := ctx.Tracker.GetStreak(habit.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d\n", habit.Title, streak)
	return nil
}

type HabitProgressCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitProgressCmd) Run(ctx *cli.Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	window, err := ctx.Tracker.GetProgressWindow(habit.ID, ctx.Today())
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n  %s\n", habit.Title, habit.Frequency.Label(), habitview.RenderWindow(window))
	return nil
}

type HabitPauseCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitPauseCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Habit, false)
}

type HabitResumeCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitResumeCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Habit, true)
}

func setActive(ctx *cli.Context, ref string, active bool) error {
	habit, err := resolveHabit(ctx, ref)
	if err != nil {
		return err
	}
	if habit.Active == active {
		fmt.Printf("%s is already %s\n", habit.Title, activeLabel(active))
		return nil
	}

	habit.Active = active
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", habit.Title, activeLabel(active))
	return nil
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "paused"
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Yes   bool   `short:"y" help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	ok, err := cli.Confirm(fmt.Sprintf("Delete %q and its whole history?", habit.Title), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}
