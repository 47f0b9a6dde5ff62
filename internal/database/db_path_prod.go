//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"
)

// GetDefaultDBPath places the database under the user's config directory,
// e.g. ~/.config/mdformat/mdformat.db. Init creates the directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("no user config dir (%v), using ./%s", err, fileName)
		return fileName
	}
	return filepath.Join(configDir, appDirName, fileName)
}

func IsDevelopment() bool {
	return false
}
