package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const tempPattern = ".tmp-slot-*"

// beforeReplace, when set, runs between the temp file being complete and it
// replacing the target. Tests use it to interrupt a write.
var beforeReplace func()

// AtomicWriteFile writes data to filename through a temporary file in the
// same directory, then replaces filename with it. Readers see the old
// content or the new, never a partial write. The temp file is removed on
// every failure path, including a panic.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := writeTemp(dir, data, perm)
	if err != nil {
		return err
	}

	replaced := false
	defer func() {
		if replaced {
			return
		}
		if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove temporary file", "path", tmp, "error", err)
		}
	}()

	if beforeReplace != nil {
		beforeReplace()
	}
	if err := replaceFile(tmp, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	replaced = true
	return nil
}

// writeTemp creates a synced temp file in dir holding data and returns its
// path. On error nothing is left behind.
func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()

	err = func() error {
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write temp file: %w", err)
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to sync temp file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close temp file: %w", err)
		}
		if err := os.Chmod(name, perm); err != nil {
			return fmt.Errorf("failed to chmod temp file: %w", err)
		}
		return nil
	}()
	if err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
