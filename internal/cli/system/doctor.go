package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/pidfile"
	"github.com/julianstephens/taskflow/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warnOnly failures do not fail the run.
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Habit log integrity", needsDB: true, run: checkHabitLogs},
	{name: "Clock/timezone", run: func(ctx *cli.Context) error { return checkClock(ctx.Now()) }},
	{name: "API server", warnOnly: true, run: checkServer},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetProfile(ctx.UserID()); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	status, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", status.Current, status.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	status, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if n := status.Pending(); n > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (%d pending, run 'taskflow migrate')", status.Current, status.Latest, n)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, cli.ErrBackupsUnsupported) {
		return nil
	}
	if err != nil {
		return err
	}

	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'taskflow backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks(ctx.UserID(), true)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	seen := make(map[string]bool)
	for _, task := range tasks {
		if seen[task.ID] {
			return fmt.Errorf("duplicate task ID found: %s", task.ID)
		}
		seen[task.ID] = true
		if task.Completed && task.CompletedAt == nil {
			return fmt.Errorf("task %s is completed without a completion time", task.ID)
		}
	}

	habits, err := ctx.Store.GetAllHabits(ctx.UserID(), true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	for _, h := range habits {
		if !h.Frequency.Valid() {
			return fmt.Errorf("habit %s has unknown frequency %q", h.ID, h.Frequency)
		}
	}
	return nil
}

// checkHabitLogs verifies that every completed log has a positive count and
// that no habit has two logs for the same day.
func checkHabitLogs(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(ctx.UserID(), true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	for _, h := range habits {
		logs, err := ctx.Store.ListCompletedLogs(h.ID)
		if err != nil {
			return fmt.Errorf("failed to get logs of habit %s: %w", h.ID, err)
		}
		days := make(map[string]bool, len(logs))
		for _, l := range logs {
			day := utils.FormatDate(l.Date)
			if days[day] {
				return fmt.Errorf("habit %s has more than one log for %s", h.ID, day)
			}
			days[day] = true
			if l.CompletionCount < 1 {
				return fmt.Errorf("log %s is completed with count %d", l.ID, l.CompletionCount)
			}
		}
	}
	return nil
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkServer(ctx *cli.Context) error {
	path := pidfile.Path(ctx.ConfigDir)
	info, err := pidfile.Running(path)
	switch {
	case err == nil:
		fmt.Printf("   API server running at %s (pid %d)\n", info.Addr, info.Pid)
		return nil
	case errors.Is(err, pidfile.ErrNotRunning):
		return nil
	case errors.Is(err, pidfile.ErrStale):
		return fmt.Errorf("%v - remove %s", err, path)
	default:
		return err
	}
}
