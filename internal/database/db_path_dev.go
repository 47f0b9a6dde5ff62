//go:build !prod

package database

// GetDefaultDBPath keeps the database next to the working directory in
// development builds.
func GetDefaultDBPath() string {
	return fileName
}

func IsDevelopment() bool {
	return true
}
