package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeycumines/one-shot-calc/internal/storage"
)

// SetKeyInFile sets a global option in the config file at path, creating it
// if needed. An existing global line for key is replaced in place; otherwise
// the option is inserted before the first section header, or appended.
// Comments, blank lines and command sections are preserved.
func SetKeyInFile(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(string(data), "\n")
	}

	entry := key
	if value != "" {
		entry += " " + value
	}

	lines = setGlobalLine(lines, key, entry)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return storage.AtomicWriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func setGlobalLine(lines []string, key, entry string) []string {
	insertAt := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			insertAt = i
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			lines[i] = entry
			return lines
		}
	}

	switch {
	case insertAt >= 0:
		lines = append(lines[:insertAt+1], lines[insertAt:]...)
		lines[insertAt] = entry
	case len(lines) > 0 && lines[len(lines)-1] == "":
		// keep the trailing newline last
		lines = append(lines[:len(lines)-1], entry, "")
	default:
		lines = append(lines, entry)
	}
	return lines
}
