package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/config"
	"github.com/julianstephens/taskflow/internal/constants"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/storage/postgres"
	"github.com/julianstephens/taskflow/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized taskflow storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigFile != "" {
		if _, err := os.Stat(ctx.ConfigFile); errors.Is(err, os.ErrNotExist) {
			if err := config.WriteDefault(ctx.ConfigFile); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("Wrote default config to: %s\n", ctx.ConfigFile)
		}
	}

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

// reset deletes an existing SQLite database file.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errors.New("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if err := postgres.ValidateConnString(source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(config.ExpandHome(source)), nil
}

// copyData copies every record of the local user from source into ctx.Store.
func copyData(ctx *cli.Context, source string) error {
	src, err := openSource(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	userID := constants.DefaultUserID

	fmt.Println("  Copying profile...")
	profile, err := src.GetProfile(userID)
	if err != nil {
		return fmt.Errorf("failed to get profile from source: %w", err)
	}
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Println("  Copying habits...")
	habits, err := src.GetAllHabits(userID, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	logCount := 0
	for _, habit := range habits {
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
		logs, err := src.ListCompletedLogs(habit.ID)
		if err != nil {
			return fmt.Errorf("failed to get logs of habit %s: %w", habit.ID, err)
		}
		for _, log := range logs {
			if _, _, err := ctx.Store.GetOrCreateLog(log); err != nil {
				return fmt.Errorf("failed to add log %s: %w", log.ID, err)
			}
		}
		logCount += len(logs)
	}
	fmt.Printf("    Copied %d habits and %d logs\n", len(habits), logCount)

	fmt.Println("  Copying tasks...")
	tasks, err := src.GetAllTasks(userID, true)
	if err != nil {
		return fmt.Errorf("failed to get tasks from source: %w", err)
	}
	for _, task := range tasks {
		if err := ctx.Store.AddTask(task); err != nil {
			return fmt.Errorf("failed to add task %s: %w", task.ID, err)
		}
	}
	fmt.Printf("    Copied %d tasks\n", len(tasks))

	fmt.Println("  Copying achievements...")
	achievements, err := src.GetAchievements(userID)
	if err != nil {
		return fmt.Errorf("failed to get achievements from source: %w", err)
	}
	for _, a := range achievements {
		if err := ctx.Store.AddAchievement(a); err != nil {
			return fmt.Errorf("failed to add achievement %s: %w", a.ID, err)
		}
	}
	fmt.Printf("    Copied %d achievements\n", len(achievements))

	fmt.Println("  Copying notifications...")
	notifications, err := src.GetNotifications(userID, false)
	if err != nil {
		return fmt.Errorf("failed to get notifications from source: %w", err)
	}
	for _, n := range notifications {
		if err := ctx.Store.AddNotification(n); err != nil {
			return fmt.Errorf("failed to add notification %s: %w", n.ID, err)
		}
	}
	fmt.Printf("    Copied %d notifications\n", len(notifications))
	return nil
}
