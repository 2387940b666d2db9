package platform

import (
	"os"
	"path/filepath"
)

const (
	AppName      = "setnodeid"
	ImageName    = "eeprom.bin"
	DatabaseName = "eeprom.db"
)

// StateRoot is where the identity store lives. It respects XDG_STATE_HOME,
// falling back to ~/.local/state/setnodeid.
func StateRoot() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".local", "state", AppName)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, AppName)
}

func DefaultImagePath() string {
	return filepath.Join(StateRoot(), ImageName)
}

func DefaultDatabasePath() string {
	return filepath.Join(StateRoot(), DatabaseName)
}
