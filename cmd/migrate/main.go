package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"exam-api/internal/config"
	"exam-api/internal/database"
	"exam-api/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "up, down or version")
	steps := flag.Int("steps", 1, "number of migrations to revert with -direction=down")
	dir := flag.String("dir", "", "migrations directory; defaults to db.migrations_path")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx := context.Background()
	db, err := database.NewSQLXOracleDB(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *dir == "" {
		*dir = cfg.DB.MigrationsPath
	}
	migrator, err := newMigrator(db, *dir)
	if err != nil {
		log.Fatal("Failed to open migrations", zap.Error(err))
	}
	defer migrator.Close()

	switch *direction {
	case "up":
		applied, err := migrator.Up(ctx)
		if err != nil {
			log.Fatal("Failed to run migrations", zap.Int("applied", applied), zap.Error(err))
		}
	case "down":
		reverted, err := migrator.Down(ctx, *steps)
		if err != nil {
			log.Fatal("Failed to revert migrations", zap.Int("reverted", reverted), zap.Error(err))
		}
		log.Info("Reverted migrations", zap.Int("reverted", reverted))
	case "version":
		version, err := migrator.Version(ctx)
		if err != nil {
			log.Fatal("Failed to read migration version", zap.Error(err))
		}
		log.Info("Current migration version", zap.Uint("version", version))
	default:
		log.Fatal("Unknown direction", zap.String("direction", *direction))
	}
}
