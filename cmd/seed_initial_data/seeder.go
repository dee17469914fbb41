package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"exam-api/cmd/seed_initial_data/internal/seedmodels"
	"exam-api/internal/domain"
	"exam-api/internal/dto"
	"exam-api/internal/service"

	"go.uber.org/zap"
)

// seeder inserts seed exams through the service layer, one transaction per
// exam. Exams whose code already exists are skipped, so reruns are safe.
type seeder struct {
	txManager domain.TransactionManager
	exams     service.ExamService
	questions service.QuestionService
	log       *zap.Logger
}

func loadSeedFile(path string) ([]seedmodels.SeedExam, error) {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seedExams []seedmodels.SeedExam
	if err := json.Unmarshal(byteValue, &seedExams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return seedExams, nil
}

// run seeds every exam and reports how many were created. A failing exam is
// logged and does not stop the others.
func (s *seeder) run(ctx context.Context, seedExams []seedmodels.SeedExam) (created int, failed int) {
	for i := range seedExams {
		ok, err := s.seedExam(ctx, &seedExams[i])
		switch {
		case err != nil:
			failed++
			s.log.Error("Error seeding exam, transaction rolled back",
				zap.String("code", seedExams[i].Code.Value),
				zap.Error(err),
			)
		case ok:
			created++
		}
	}
	return created, failed
}

func (s *seeder) seedExam(ctx context.Context, se *seedmodels.SeedExam) (bool, error) {
	code := se.Code.Value
	existing, err := s.exams.ListExamsByCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("error checking exam %s: %w", code, err)
	}
	if len(existing) > 0 {
		s.log.Info("Exam exists, skipping.", zap.String("code", code), zap.String("id", existing[0].ID))
		return false, nil
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		exam, err := s.exams.CreateExam(txCtx, &se.ExamRequest)
		if err != nil {
			return fmt.Errorf("failed to save exam %s: %w", code, err)
		}
		s.log.Info("Created exam.", zap.String("id", exam.ID), zap.String("code", exam.Code))

		for i := range se.Questions {
			q := se.Questions[i]
			q.ExamID = dto.Some(exam.ID)
			question, err := s.questions.CreateQuestion(txCtx, &q)
			if err != nil {
				return fmt.Errorf("failed to save question %d of exam %s: %w", i+1, code, err)
			}
			s.log.Debug("Created question.", zap.String("id", question.ID), zap.Int("options", len(question.Options)))
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
