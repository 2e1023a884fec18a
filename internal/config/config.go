package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// LocalSettingsFile is looked up in the current directory before the global one
	LocalSettingsFile = ".postboard.jsonc"
)

var (
	// ConfigDir is the global configuration directory (~/.postboard)
	ConfigDir string

	// SettingsFile is the global settings file
	SettingsFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// DatabasePath is the SQLite database file for the fetch log
	DatabasePath string

	// LogFile receives the operator-facing log while the TUI owns the terminal
	LogFile string
)

const defaultSettingsFile = `{
  // Remote posts API
  "baseURL": "https://jsonplaceholder.typicode.com",
  "collection": "posts",
  "timeoutSeconds": 10,

  // Record every remote read in postboard.db
  "historyEnabled": true,

  // debug, info, warn, error
  "logLevel": "info",

  // Seconds before status messages clear (0 keeps them)
  "messageTimeout": 5,

  // Look for a newer release when the TUI starts
  "checkUpdates": false
}
`

// Initialize sets up the configuration directories and files
// It creates ~/.postboard/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".postboard"))
}

// InitializeAt sets up the configuration under dir instead of the home directory
func InitializeAt(dir string) error {
	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "config.jsonc")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	DatabasePath = filepath.Join(ConfigDir, "postboard.db")
	LogFile = filepath.Join(ConfigDir, "postboard.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	if _, err := os.Stat(SettingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettingsFile), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	return nil
}

// GetSettingsFilePath returns the settings file path (local or global)
func GetSettingsFilePath() string {
	if _, err := os.Stat(LocalSettingsFile); err == nil {
		return LocalSettingsFile
	}
	return SettingsFile
}
