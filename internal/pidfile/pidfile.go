// Package pidfile records the running API server so other commands can find it.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/taskflow/internal/constants"
)

var (
	ErrNotRunning = errors.New("server is not running")
	// ErrStale is returned when the pidfile names a process that is gone or
	// is not a taskflow binary.
	ErrStale = errors.New("stale pidfile")
)

var findProcessFunc = ps.FindProcess

// Info is the content of a pidfile: "<pid>|<addr>"
type Info struct {
	Pid  int
	Addr string
}

func Path(configDir string) string {
	return filepath.Join(configDir, constants.PidfileName)
}

func Write(path string, info Info) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create pidfile directory: %w", err)
	}
	content := fmt.Sprintf("%d|%s\n", info.Pid, info.Addr)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write pidfile: %w", err)
	}
	return nil
}

func Read(path string) (Info, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, ErrNotRunning
		}
		return Info{}, err
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	if len(parts) != 2 {
		return Info{}, errors.New("pidfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Info{}, errors.New("invalid process ID in pidfile")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return Info{}, errors.New("address in pidfile is empty")
	}
	return Info{Pid: pid, Addr: parts[1]}, nil
}

// Running reads the pidfile and checks that its process is alive and is a
// taskflow binary.
func Running(path string) (Info, error) {
	info, err := Read(path)
	if err != nil {
		return Info{}, err
	}

	process, err := findProcessFunc(info.Pid)
	if err != nil || process == nil {
		return info, fmt.Errorf("%w: process %d not found", ErrStale, info.Pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return info, fmt.Errorf("%w: process %d is %s", ErrStale, info.Pid, process.Executable())
	}
	return info, nil
}

// Remove deletes the pidfile; a missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
