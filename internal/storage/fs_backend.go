package storage

import (
	"fmt"
	"os"
)

// FileSystemBackend implements Backend using the local file system.
type FileSystemBackend struct {
	profile  string
	lockFile *os.File
}

// NewFileSystemBackend creates a new file system storage backend.
// It acquires an exclusive lock on the profile to prevent concurrent access.
func NewFileSystemBackend(profile string) (*FileSystemBackend, error) {
	if err := validateName("profile", profile); err != nil {
		return nil, err
	}

	// Ensure the storage directory exists
	dir, err := storageDirectory()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	// Acquire exclusive lock on the profile
	lockPath, err := profileLockPath(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get lock file path: %w", err)
	}

	lockFile, err := acquireFileLock(lockPath)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire profile lock: %w", err)
	}

	return &FileSystemBackend{
		profile:  profile,
		lockFile: lockFile,
	}, nil
}

// Get retrieves the value stored in the named slot.
// It returns ("", false, nil) if the slot file does not exist.
func (b *FileSystemBackend) Get(slot string) (string, bool, error) {
	path, err := b.path(slot)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read slot file: %w", err)
	}

	return string(data), true, nil
}

// Set atomically replaces the value stored in the named slot.
func (b *FileSystemBackend) Set(slot, value string) error {
	if b.lockFile == nil {
		return fmt.Errorf("backend for profile %q is closed", b.profile)
	}

	path, err := b.path(slot)
	if err != nil {
		return err
	}

	if err := AtomicWriteFile(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write slot file: %w", err)
	}

	return nil
}

// Close releases the profile lock.
func (b *FileSystemBackend) Close() error {
	if b.lockFile == nil {
		return nil
	}

	if err := releaseFileLock(b.lockFile); err != nil {
		return fmt.Errorf("failed to release profile lock: %w", err)
	}

	b.lockFile = nil
	return nil
}

func (b *FileSystemBackend) path(slot string) (string, error) {
	if err := validateName("slot", slot); err != nil {
		return "", err
	}
	path, err := slotFilePath(b.profile, slot)
	if err != nil {
		return "", fmt.Errorf("failed to get slot file path: %w", err)
	}
	return path, nil
}

// Ensure FileSystemBackend implements Backend at compile time
var _ Backend = (*FileSystemBackend)(nil)
