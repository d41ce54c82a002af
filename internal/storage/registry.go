package storage

import (
	"fmt"
	"sort"
)

// BackendFactory is a function that creates a new Backend instance for a profile.
type BackendFactory func(profile string) (Backend, error)

// BackendRegistry maps backend names to their factory functions.
var BackendRegistry = map[string]BackendFactory{
	"fs": func(profile string) (Backend, error) {
		return NewFileSystemBackend(profile)
	},
	"memory": func(profile string) (Backend, error) {
		return NewInMemoryBackend(profile)
	},
}

// GetBackend retrieves a backend by name and creates an instance.
func GetBackend(name, profile string) (Backend, error) {
	factory, ok := BackendRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend: %s (available: %v)", name, BackendNames())
	}
	return factory(profile)
}

// BackendNames returns the registered backend names, sorted.
func BackendNames() []string {
	names := make([]string, 0, len(BackendRegistry))
	for name := range BackendRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
