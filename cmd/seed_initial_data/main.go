package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"exam-api/internal/config"
	"exam-api/internal/database"
	"exam-api/internal/logger"
	"exam-api/internal/repository"
	"exam-api/internal/service"
	"exam-api/internal/validation"

	"go.uber.org/zap"
)

const defaultSeedFile = "configs/seed_data/sample_exams.json"

func main() {
	seedFile := flag.String("file", defaultSeedFile, "path to the JSON seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	seedExams, err := loadSeedFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to load seed data", zap.String("path", *seedFile), zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("exams", len(seedExams)))

	txManager := repository.NewTransactionManagerAdapter(db)
	validator := validation.NewValidator()
	s := &seeder{
		txManager: txManager,
		exams:     service.NewExamService(repository.NewExamDatabaseAdapter(db), txManager, validator),
		questions: service.NewQuestionService(repository.NewQuestionDatabaseAdapter(db), txManager, validator),
		log:       log,
	}

	created, failed := s.run(ctx, seedExams)
	log.Info("Initial data seeding process completed.",
		zap.Int("created", created),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		db.Close()
		_ = logger.Sync()
		os.Exit(1)
	}
}
