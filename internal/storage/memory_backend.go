package storage

import (
	"fmt"
	"sync"
)

// InMemoryBackend implements Backend using process-wide memory (for testing,
// and for running without touching the user's config directory).
type InMemoryBackend struct {
	profile string
}

// Global in-memory storage shared across all instances, keyed by profile then slot.
var globalInMemoryStore = struct {
	sync.RWMutex
	profiles map[string]map[string]string
}{
	profiles: make(map[string]map[string]string),
}

// NewInMemoryBackend creates a new in-memory storage backend for profile.
// Backends created for the same profile observe each other's writes.
func NewInMemoryBackend(profile string) (*InMemoryBackend, error) {
	if profile == "" {
		return nil, fmt.Errorf("profile cannot be empty")
	}
	return &InMemoryBackend{profile: profile}, nil
}

// Get retrieves the value stored in the named slot.
func (b *InMemoryBackend) Get(slot string) (string, bool, error) {
	if slot == "" {
		return "", false, fmt.Errorf("slot cannot be empty")
	}

	globalInMemoryStore.RLock()
	defer globalInMemoryStore.RUnlock()

	value, ok := globalInMemoryStore.profiles[b.profile][slot]
	return value, ok, nil
}

// Set replaces the value stored in the named slot.
func (b *InMemoryBackend) Set(slot, value string) error {
	if slot == "" {
		return fmt.Errorf("slot cannot be empty")
	}

	globalInMemoryStore.Lock()
	defer globalInMemoryStore.Unlock()

	slots := globalInMemoryStore.profiles[b.profile]
	if slots == nil {
		slots = make(map[string]string)
		globalInMemoryStore.profiles[b.profile] = slots
	}
	slots[slot] = value
	return nil
}

// Close releases any resources (no-op for in-memory backend).
func (b *InMemoryBackend) Close() error {
	return nil
}

// ClearAllInMemory clears every profile from the in-memory store (for testing).
func ClearAllInMemory() {
	globalInMemoryStore.Lock()
	globalInMemoryStore.profiles = make(map[string]map[string]string)
	globalInMemoryStore.Unlock()
}

// Ensure InMemoryBackend implements Backend at compile time
var _ Backend = (*InMemoryBackend)(nil)
