package service

import (
	"context"
	"sort"
	"strings"

	"exam-api/internal/domain"
	"exam-api/internal/dto"
	"exam-api/internal/logger"
	"exam-api/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ResultService defines the exam result use cases exposed over HTTP.
type ResultService interface {
	ListResultsByExam(ctx context.Context, examID string) ([]dto.ResultResponse, error)
	GetResult(ctx context.Context, id string) (*dto.ResultResponse, error)
	CreateResult(ctx context.Context, req *dto.CreateResultRequest) (*dto.ResultResponse, error)
	GradeResult(ctx context.Context, id string, req *dto.GradeResultRequest) (*dto.ResultResponse, error)
	DeleteResult(ctx context.Context, id string) error
}

type resultServiceImpl struct {
	repo      domain.ResultRepository
	txManager domain.TransactionManager
	validator *validation.Validator
}

// NewResultService creates a new instance of ResultService.
func NewResultService(repo domain.ResultRepository, txManager domain.TransactionManager, validator *validation.Validator) ResultService {
	return &resultServiceImpl{
		repo:      repo,
		txManager: txManager,
		validator: validator,
	}
}

func (s *resultServiceImpl) ListResultsByExam(ctx context.Context, examID string) (_ []dto.ResultResponse, err error) {
	ctx, span := startSpan(ctx, "ResultService.ListResultsByExam")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(examID) == "" {
		return nil, domain.NewInvalidInputError(MsgExamIDRequired)
	}
	span.SetAttributes(attribute.String("exam.id", examID))

	results, err := s.repo.ListResultsByExam(ctx, examID)
	if err != nil {
		return nil, translateError(ctx, err, resultMessages, "list results")
	}
	return dto.ToResultResponses(results), nil
}

func (s *resultServiceImpl) GetResult(ctx context.Context, id string) (_ *dto.ResultResponse, err error) {
	ctx, span := startSpan(ctx, "ResultService.GetResult")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("result.id", id))

	result, err := s.repo.GetResultByID(ctx, id)
	if err != nil {
		return nil, translateError(ctx, err, resultMessages, "get result")
	}
	resp := dto.ToResultResponse(result)
	return &resp, nil
}

// CreateResult stores a submission and its answers atomically.
func (s *resultServiceImpl) CreateResult(ctx context.Context, req *dto.CreateResultRequest) (_ *dto.ResultResponse, err error) {
	ctx, span := startSpan(ctx, "ResultService.CreateResult")
	defer func() { endSpan(span, err) }()

	if errs := s.validator.ValidateCreateResultRequest(req); len(errs) > 0 {
		return nil, errs
	}

	result := domain.NewExamResult(
		strings.TrimSpace(req.ExamID.Value),
		strings.TrimSpace(req.StudentName.Value),
		float64(req.Score.Value),
		int(req.CorrectCount.Value),
		int(req.TotalQuestions.Value),
	)
	result.Answers = dto.ToDomainAnswers(req.Answers)
	if errs := s.validator.ValidateEntity(result); len(errs) > 0 {
		return nil, errs
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateResult(txCtx, result); err != nil {
			return err
		}
		return s.repo.CreateAnswers(txCtx, result.ID, result.Answers)
	})
	if err != nil {
		return nil, translateError(ctx, err, resultMessages, "create result")
	}

	logger.Get().Info("Result submitted",
		zap.String("result_id", result.ID),
		zap.String("exam_id", result.ExamID),
		zap.Int("answers", len(result.Answers)),
	)
	resp := dto.ToResultResponse(result)
	return &resp, nil
}

// GradeResult applies manual grades per question and optionally overrides
// the result's score and grading status. A grade for a question the result
// has no answer for is skipped.
func (s *resultServiceImpl) GradeResult(ctx context.Context, id string, req *dto.GradeResultRequest) (_ *dto.ResultResponse, err error) {
	ctx, span := startSpan(ctx, "ResultService.GradeResult")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.String("result.id", id),
		attribute.Int("grades", len(req.ManualGrades)),
	)

	if errs := s.validator.ValidateGradeResultRequest(req); len(errs) > 0 {
		return nil, errs
	}
	update := toGradingUpdate(req)

	var graded *domain.ExamResult
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.ResultExists(txCtx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFoundError(MsgResultNotFound)
		}

		if err := s.repo.UpdateResultSummary(txCtx, id, update); err != nil {
			return err
		}

		questionIDs := make([]string, 0, len(update.ManualGrades))
		for questionID := range update.ManualGrades {
			questionIDs = append(questionIDs, questionID)
		}
		sort.Strings(questionIDs)

		for _, questionID := range questionIDs {
			affected, err := s.repo.SetManualGrade(txCtx, id, questionID, update.ManualGrades[questionID])
			if err != nil {
				return err
			}
			if affected == 0 {
				logger.Get().Debug("No answer to grade",
					zap.String("result_id", id),
					zap.String("question_id", questionID),
				)
			}
		}

		graded, err = s.repo.GetResultByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, translateError(ctx, err, resultMessages, "grade result")
	}

	logger.Get().Info("Result graded",
		zap.String("result_id", id),
		zap.Int("grades", len(update.ManualGrades)),
	)
	resp := dto.ToResultResponse(graded)
	return &resp, nil
}

// DeleteResult removes the result together with its answers.
func (s *resultServiceImpl) DeleteResult(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "ResultService.DeleteResult")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("result.id", id))

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteAnswers(txCtx, id); err != nil {
			return err
		}
		return s.repo.DeleteResult(txCtx, id)
	})
	if err != nil {
		return translateError(ctx, err, resultMessages, "delete result")
	}

	logger.Get().Info("Result deleted", zap.String("result_id", id))
	return nil
}

// toGradingUpdate keeps a present score and a non-null grading status.
// A null manual grade becomes a nil entry so the stored grade is cleared.
func toGradingUpdate(req *dto.GradeResultRequest) domain.GradingUpdate {
	u := domain.GradingUpdate{ManualGrades: make(map[string]*float64, len(req.ManualGrades))}
	for questionID, grade := range req.ManualGrades {
		if !grade.HasValue() {
			u.ManualGrades[questionID] = nil
			continue
		}
		v := float64(grade.Value)
		u.ManualGrades[questionID] = &v
	}
	if req.Score.HasValue() {
		u.Score = domain.SetField(float64(req.Score.Value))
	}
	if req.GradingStatus.HasValue() {
		u.GradingStatus = domain.SetField(req.GradingStatus.Ptr())
	}
	return u
}
