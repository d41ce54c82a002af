package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// To enable testing without polluting the user's home directory,
// these functions are defined as variables. The test suite can then
// override them to point to a temporary directory.
var (
	storageDirectory = StorageDirectory
	slotFilePath     = SlotFilePath
	profileLockPath  = ProfileLockFilePath
)

// SetTestPaths overrides the path functions for testing.
// This should only be used in tests.
func SetTestPaths(dir string) {
	storageDirectory = func() (string, error) { return dir, nil }
	slotFilePath = func(profile, slot string) (string, error) {
		return filepath.Join(dir, profile, slot+".json"), nil
	}
	profileLockPath = func(profile string) (string, error) {
		return filepath.Join(dir, profile+".lock"), nil
	}
}

// ResetPaths resets the path functions to their defaults.
// This should only be used in tests.
func ResetPaths() {
	storageDirectory = StorageDirectory
	slotFilePath = SlotFilePath
	profileLockPath = ProfileLockFilePath
}

// StorageDirectory returns the directory where slot files are stored.
// Uses os.UserConfigDir() to resolve to {UserConfigDir}/one-shot-calc/storage/
func StorageDirectory() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "one-shot-calc", "storage"), nil
}

// SlotFilePath returns the absolute path to a slot file.
// File naming: {profile}/{slot}.json
func SlotFilePath(profile, slot string) (string, error) {
	if err := validateName("profile", profile); err != nil {
		return "", err
	}
	if err := validateName("slot", slot); err != nil {
		return "", err
	}
	dir, err := storageDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, profile, slot+".json"), nil
}

// ProfileLockFilePath returns the absolute path to a profile lock file.
// File naming: {profile}.lock
func ProfileLockFilePath(profile string) (string, error) {
	if err := validateName("profile", profile); err != nil {
		return "", err
	}
	dir, err := storageDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, profile+".lock"), nil
}

// validateName rejects names that would escape the storage directory.
func validateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid %s name: %q", kind, name)
	}
	return nil
}
