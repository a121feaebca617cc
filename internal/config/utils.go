package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Paintersrp/astromark/internal/constants"
	"github.com/Paintersrp/astromark/internal/logging"
)

// GetOrCreateDir resolves the per-user configuration directory and creates it
// when missing.
func GetOrCreateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", &ConfigInitError{msg: "config dir could not be found", err: err}
	}

	dir := filepath.Join(base, constants.ConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ConfigInitError{msg: "failed to create config directory", err: err}
	}
	return dir, nil
}

func GetConfigPath(dir string) string {
	return filepath.Join(dir, constants.ConfigFile)
}

func GetRecentPath(dir string) string {
	return filepath.Join(dir, constants.RecentFile)
}

func GetLogPath(dir string) string {
	return filepath.Join(dir, constants.LogFile)
}

// EnsureConfigExists writes the default script to path unless a file is
// already there.
func EnsureConfigExists(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ConfigInitError{msg: "failed to create config directory", err: err}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logging.Infof("no config file detected, creating %s", path)
		if err := os.WriteFile(path, []byte(constants.DefaultScript), 0o644); err != nil {
			return &ConfigInitError{msg: "failed to create config file", err: err}
		}
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	return nil
}

// ResetConfig overwrites path with the default script.
func ResetConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ConfigInitError{msg: "failed to create config directory", err: err}
	}
	if err := os.WriteFile(path, []byte(constants.DefaultScript), 0o644); err != nil {
		return fmt.Errorf("failed to reset config file: %w", err)
	}
	return nil
}
