package main

import (
	"os"

	"exam-api/database/migrations"
	"exam-api/internal/database"
	"exam-api/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// newMigrator reads migrations from dir when it exists on disk and falls
// back to the copies bundled into the binary.
func newMigrator(db *sqlx.DB, dir string) (*database.Migrator, error) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		logger.Get().Info("Using migrations directory", zap.String("dir", dir))
		return database.NewMigrator(db, os.DirFS(dir), ".")
	}
	logger.Get().Info("Using bundled migrations")
	return database.NewMigrator(db, migrations.FS, ".")
}
