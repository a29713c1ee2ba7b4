package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

const (
	TEST_PIDFILE_TIMEOUT  = 30 * time.Second
	TEST_SHUTDOWN_TIMEOUT = 10 * time.Second
)

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("TASKFLOW_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	t.Logf("Using bin dir: %s", binDir)

	cliPath := filepath.Join(binDir, "taskflow")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/taskflow ./cmd/taskflow'.", cliPath)
	}

	// Create temp home for isolation
	tempDir := t.TempDir()
	t.Logf("Running test in temp dir: %s", tempDir)

	var cleanEnv []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "TASKFLOW_") {
			cleanEnv = append(cleanEnv, e)
		}
	}
	cleanEnv = append(cleanEnv, fmt.Sprintf("HOME=%s", tempDir))
	configDir := filepath.Join(tempDir, ".config", "taskflow")

	// 2. Initialize CLI
	t.Log("Initializing CLI...")
	runCmd(t, cliPath, cleanEnv, "init")
	if _, err := os.Stat(filepath.Join(configDir, "config.yaml")); err != nil {
		t.Fatalf("init did not write config: %v", err)
	}
	runCmd(t, cliPath, cleanEnv, "onboard", "--name", "E2E", "--preference", "morning", "--habit", "Stretch")

	// 3. Track habits and tasks
	runCmd(t, cliPath, cleanEnv, "habit", "add", "Read", "--goal", "20 pages")
	out := runCmd(t, cliPath, cleanEnv, "habit", "done", "Read")
	if !strings.Contains(out, "Streak: 1") {
		t.Errorf("expected streak 1 after first completion, got:\n%s", out)
	}
	out = runCmd(t, cliPath, cleanEnv, "habit", "done", "Read")
	if !strings.Contains(out, "(x2)") {
		t.Errorf("expected repeat completion to be counted, got:\n%s", out)
	}

	today := time.Now().Format("2006-01-02")
	runCmd(t, cliPath, cleanEnv, "task", "add", "Ship release", "--due", today, "--priority", "1")
	out = runCmd(t, cliPath, cleanEnv, "calendar")
	if !strings.Contains(out, "Ship release (High Priority)") {
		t.Errorf("expected task in calendar, got:\n%s", out)
	}
	runCmd(t, cliPath, cleanEnv, "backup", "create")
	runCmd(t, cliPath, cleanEnv, "doctor")

	// 4. Start the API server (Background)
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveCmd := exec.CommandContext(ctx, cliPath, "serve", "--addr", addr)
	serveCmd.Env = cleanEnv
	serveCmd.Dir = tempDir
	var serveOut bytes.Buffer
	serveCmd.Stdout = &serveOut
	serveCmd.Stderr = &serveOut
	if err := serveCmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Log("Server started")

	defer func() {
		if t.Failed() {
			t.Logf("Server output: %s", serveOut.String())
		}
	}()

	// 5. Wait for Pidfile (Server Ready)
	pidfilePath := filepath.Join(configDir, "taskflow-serve.pid")
	t.Logf("Waiting for pidfile at %s", pidfilePath)
	waitForFile(t, pidfilePath, TEST_PIDFILE_TIMEOUT)

	var body struct {
		Success bool `json:"success"`
		Summary struct {
			TotalStreak    int `json:"total_streak"`
			CompletedToday int `json:"completed_today"`
			TotalHabits    int `json:"total_habits"`
		} `json:"summary"`
	}
	getJSON(t, fmt.Sprintf("http://%s/api/habits", addr), &body)
	if !body.Success || body.Summary.TotalHabits != 2 || body.Summary.CompletedToday != 1 {
		t.Errorf("unexpected habits summary: %+v", body)
	}

	// 6. Graceful shutdown removes the pidfile
	if err := serveCmd.Process.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to stop server: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- serveCmd.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Server exited with error: %v", err)
		}
	case <-time.After(TEST_SHUTDOWN_TIMEOUT):
		t.Fatalf("Timed out waiting for server shutdown")
	}
	if _, err := os.Stat(pidfilePath); !os.IsNotExist(err) {
		t.Errorf("pidfile should be removed on shutdown")
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	defer l.Close()
	return l.Addr().String()
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	var lastErr error
	deadline := time.Now().Add(TEST_PIDFILE_TIMEOUT)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err != nil {
			lastErr = err
			time.Sleep(100 * time.Millisecond)
			continue
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: status %d", url, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("GET %s: %v", url, err)
		}
		return
	}
	t.Fatalf("GET %s never succeeded: %v", url, lastErr)
}

func waitForFile(t *testing.T, path string, timeout time.Duration) {
	start := time.Now()
	for {
		if _, err := os.Stat(path); err == nil {
			return
		}
		if time.Since(start) > timeout {
			t.Fatalf("Timed out waiting for file: %s", path)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
