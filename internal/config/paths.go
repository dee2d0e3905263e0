package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the Chatstream data directory.
// - Windows: %APPDATA%\chatstream
// - Other OS: ~/.chatstream
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "chatstream")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".chatstream"
	}
	return filepath.Join(home, ".chatstream")
}

// DBPath returns the path to the SQLite database file.
func DBPath() string {
	return filepath.Join(DataDir(), "chatstream.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
