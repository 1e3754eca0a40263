package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericogr/siegebot/internal/game"
	"github.com/ericogr/siegebot/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB opens the SQLite database at dataSourceName, creating its parent
// directory when needed, and migrates the schema.
func OpenDB(dataSourceName string) (*gorm.DB, error) {
	if dir := fileDir(dataSourceName); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Keep schema updated via AutoMigrate; the profile table keeps the
	// legacy name so existing leaderboards carry over.
	if err := db.AutoMigrate(&game.Profile{}, &cooldownRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logging.Info("database ready", logging.Fields{"path": dataSourceName})
	return db, nil
}

// fileDir returns the directory to create for a file-backed DSN, or ""
// for in-memory and URI forms.
func fileDir(dsn string) string {
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return ""
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return ""
	}
	return dir
}
