package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

const logFilePrefix = "digitalium-"

// SetupLogFile opens a fresh timestamped log file under dir and prunes the
// directory down to keep most-recent files. The caller owns the handle.
func SetupLogFile(dir string, keep int) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	name := logFilePrefix + time.Now().Format("2006-01-02T15-04-05") + ".log"
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	if err := pruneLogs(dir, keep); err != nil {
		// Pruning failure must not take logging down with it.
		fmt.Fprintf(os.Stderr, "warning: prune old logs: %v\n", err)
	}
	return f, nil
}

// pruneLogs deletes the oldest log files once the directory holds more than
// keep of them. The timestamp in the name sorts chronologically.
func pruneLogs(dir string, keep int) error {
	files, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}

	slices.Sort(files)
	for _, stale := range files[:len(files)-keep] {
		if err := os.Remove(stale); err != nil {
			return fmt.Errorf("remove %s: %w", stale, err)
		}
	}
	return nil
}
