package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the config file location.
const ConfigEnvVar = "CALC_CONFIG"

// GetConfigPath returns $CALC_CONFIG, or ~/.one-shot-calc/config.
func GetConfigPath() (string, error) {
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".one-shot-calc", "config"), nil
}

// EnsureConfigDir creates the directory holding the config file.
func EnsureConfigDir() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Dir(path), 0755)
}
