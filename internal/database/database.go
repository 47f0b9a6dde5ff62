package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mdformat/internal/models"
)

const (
	appDirName = "mdformat"
	fileName   = "mdformat.db"

	defaultBusyTimeout = 5 * time.Second
)

// Config holds DB configuration. An empty Path uses GetDefaultDBPath.
type Config struct {
	Path        string
	LogLevel    logger.LogLevel
	BusyTimeout time.Duration
}

// Init opens the settings database, creating its directory, and migrates it.
func Init(cfg Config) (*gorm.DB, error) {
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Warn
	}
	if cfg.Path == "" {
		cfg.Path = GetDefaultDBPath()
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = defaultBusyTimeout
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(cfg)), &gorm.Config{
		Logger: newLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}

	// Two CLI processes may touch the same file; one connection per process
	// plus the busy timeout lets the second writer wait instead of failing.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

func dsn(cfg Config) string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=ON",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
}

func newLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(loggerWriter{}, "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// migrate runs all automigrations. Keep the model list in one place.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.PluginData{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// loggerWriter hands gorm's output to the std logger so it follows
// whatever destination main picked.
type loggerWriter struct{}

func (loggerWriter) Write(p []byte) (int, error) {
	log.Printf("gorm: %s", p)
	return len(p), nil
}
