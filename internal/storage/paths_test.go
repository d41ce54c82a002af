package storage

import (
	"path/filepath"
	"testing"
)

func TestSlotFilePath(t *testing.T) {
	dir := setupTest(t)

	got, err := slotFilePath("default", "calculatorHistory")
	if err != nil {
		t.Fatalf("slotFilePath() error = %v", err)
	}
	want := filepath.Join(dir, "default", "calculatorHistory.json")
	if got != want {
		t.Errorf("slotFilePath() = %q, want %q", got, want)
	}

	lock, err := profileLockPath("default")
	if err != nil {
		t.Fatalf("profileLockPath() error = %v", err)
	}
	if want := filepath.Join(dir, "default.lock"); lock != want {
		t.Errorf("profileLockPath() = %q, want %q", lock, want)
	}
}

func TestDefaultPathsRejectBadNames(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		slot    string
	}{
		{"empty profile", "", "slot"},
		{"empty slot", "default", ""},
		{"dot dot profile", "..", "slot"},
		{"separator in slot", "default", "a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SlotFilePath(tt.profile, tt.slot); err == nil {
				t.Errorf("SlotFilePath(%q, %q) expected error", tt.profile, tt.slot)
			}
		})
	}

	if _, err := ProfileLockFilePath(""); err == nil {
		t.Error("ProfileLockFilePath(\"\") expected error")
	}
}

func TestStorageDirectory(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())

	dir, err := StorageDirectory()
	if err != nil {
		t.Skipf("no user config directory on this platform: %v", err)
	}
	if filepath.Base(dir) != "storage" || filepath.Base(filepath.Dir(dir)) != "one-shot-calc" {
		t.Errorf("StorageDirectory() = %q, want .../one-shot-calc/storage", dir)
	}
}
