package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/taskflow/internal/constants"
)

func TestSetGetDelete(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://taskflow@localhost:5432/taskflow?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := SetConnectionString("  "); err == nil {
		t.Error("expected error for blank connection string")
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(constants.ConnectionEnvVar, "")

	connStr, source, err := ResolveConnectionString()
	if err != nil || source != SourceNone || connStr != "" {
		t.Fatalf("expected nothing resolved, got %q %q %v", connStr, source, err)
	}

	if err := SetConnectionString("host=localhost dbname=from_keyring"); err != nil {
		t.Fatal(err)
	}
	connStr, source, err = ResolveConnectionString()
	if err != nil || source != SourceKeyring || connStr != "host=localhost dbname=from_keyring" {
		t.Errorf("expected keyring value, got %q %q %v", connStr, source, err)
	}

	t.Setenv(constants.ConnectionEnvVar, "host=localhost dbname=from_env")
	connStr, source, err = ResolveConnectionString()
	if err != nil || source != SourceEnv || connStr != "host=localhost dbname=from_env" {
		t.Errorf("expected env value to win, got %q %q %v", connStr, source, err)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}
}
