package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FindEnvFile walks from the working directory up to the filesystem root and
// returns the first .env it finds.
func FindEnvFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ".env")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadEnv loads the nearest .env into the process environment. Variables
// already set are not overridden.
func LoadEnv() (string, error) {
	path, err := FindEnvFile()
	if err != nil {
		return "", err
	}
	return path, godotenv.Load(path)
}
