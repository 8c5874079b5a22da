package config

import (
	"os"
	"path/filepath"
)

var userHomeDir = os.UserHomeDir

// GlobalDir is ~/.attest, or "" when the home directory is unknown. It holds
// the global config file and the log file.
func GlobalDir() string {
	home, err := userHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, DirName)
}

// SetUserHomeDirForTest swaps the home lookup used by GlobalDir and returns
// the restore func.
func SetUserHomeDirForTest(lookup func() (string, error)) (restore func()) {
	prev := userHomeDir
	userHomeDir = lookup
	return func() { userHomeDir = prev }
}
