package backups

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/taskflow/internal/cli"
	"github.com/julianstephens/taskflow/internal/config"
	"github.com/julianstephens/taskflow/internal/constants"
	"github.com/julianstephens/taskflow/internal/models"
	"github.com/julianstephens/taskflow/internal/storage"
	"github.com/julianstephens/taskflow/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return cli.NewContext(store, config.DefaultConfig(), dir), store, dir
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _, dir := setupTestContext(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, constants.BackupDirName))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 backup, got %d", len(entries))
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, store, dir := setupTestContext(t)

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	info, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	err = store.AddHabit(models.Habit{
		ID:              "after-backup",
		UserID:          constants.DefaultUserID,
		Title:           "Added later",
		GoalDescription: "x",
		Frequency:       models.FrequencyDaily,
		Active:          true,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Restore by bare file name, resolved inside the backup directory.
	if err := (&BackupRestoreCmd{BackupFile: info.Name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	restored := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	defer restored.Close()
	if _, err := restored.GetHabit("after-backup"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("habit added after the backup should be gone, got %v", err)
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		t.Fatal(err)
	}
	name := "taskflow-20240101-000000.db"
	if err := os.WriteFile(filepath.Join(backupDir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := resolvePath(name, backupDir)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(backupDir, name) {
		t.Errorf("unexpected path %s", got)
	}

	if _, err := resolvePath("missing.db", backupDir); err == nil {
		t.Error("expected error for missing backup")
	}
	if _, err := resolvePath(filepath.Join(dir, "missing.db"), backupDir); err == nil {
		t.Error("expected error for missing absolute path")
	}
}

func TestBackupUnsupportedStore(t *testing.T) {
	ctx := cli.NewContext(nil, config.DefaultConfig(), t.TempDir())
	if _, err := ctx.BackupManager(); !errors.Is(err, cli.ErrBackupsUnsupported) {
		t.Errorf("expected ErrBackupsUnsupported, got %v", err)
	}
}
