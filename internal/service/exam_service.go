package service

import (
	"context"
	"strings"

	"exam-api/internal/domain"
	"exam-api/internal/dto"
	"exam-api/internal/logger"
	"exam-api/internal/util"
	"exam-api/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ExamService defines the exam use cases exposed over HTTP.
type ExamService interface {
	ListExams(ctx context.Context) ([]dto.ExamResponse, error)
	ListExamsByCode(ctx context.Context, code string) ([]dto.ExamResponse, error)
	GetExam(ctx context.Context, id string) (*dto.ExamResponse, error)
	CreateExam(ctx context.Context, req *dto.ExamRequest) (*dto.ExamResponse, error)
	UpdateExam(ctx context.Context, id string, req *dto.ExamRequest) (*dto.ExamResponse, error)
	DeleteExam(ctx context.Context, id string) error
}

type examServiceImpl struct {
	repo      domain.ExamRepository
	txManager domain.TransactionManager
	validator *validation.Validator
}

// NewExamService creates a new instance of ExamService.
func NewExamService(repo domain.ExamRepository, txManager domain.TransactionManager, validator *validation.Validator) ExamService {
	return &examServiceImpl{
		repo:      repo,
		txManager: txManager,
		validator: validator,
	}
}

func (s *examServiceImpl) ListExams(ctx context.Context) (_ []dto.ExamResponse, err error) {
	ctx, span := startSpan(ctx, "ExamService.ListExams")
	defer func() { endSpan(span, err) }()

	exams, err := s.repo.ListExams(ctx)
	if err != nil {
		return nil, translateError(ctx, err, examMessages, "list exams")
	}
	return dto.ToExamResponses(exams), nil
}

// ListExamsByCode returns every exam whose code matches exactly.
func (s *examServiceImpl) ListExamsByCode(ctx context.Context, code string) (_ []dto.ExamResponse, err error) {
	ctx, span := startSpan(ctx, "ExamService.ListExamsByCode")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(code) == "" {
		return nil, domain.NewInvalidInputError(MsgCodeParamRequired)
	}
	span.SetAttributes(attribute.String("exam.code", code))

	exams, err := s.repo.ListExamsByCode(ctx, code)
	if err != nil {
		return nil, translateError(ctx, err, examMessages, "list exams by code")
	}
	return dto.ToExamResponses(exams), nil
}

func (s *examServiceImpl) GetExam(ctx context.Context, id string) (_ *dto.ExamResponse, err error) {
	ctx, span := startSpan(ctx, "ExamService.GetExam")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("exam.id", id))

	exam, err := s.repo.GetExamByID(ctx, id)
	if err != nil {
		return nil, translateError(ctx, err, examMessages, "get exam")
	}
	resp := dto.ToExamResponse(exam)
	return &resp, nil
}

// CreateExam stores a new exam. New exams are inactive unless isActive is sent.
func (s *examServiceImpl) CreateExam(ctx context.Context, req *dto.ExamRequest) (_ *dto.ExamResponse, err error) {
	ctx, span := startSpan(ctx, "ExamService.CreateExam")
	defer func() { endSpan(span, err) }()

	if errs := s.validator.ValidateExamRequest(req, false); len(errs) > 0 {
		return nil, errs
	}

	startTime, _ := util.ParseTimestamp(req.StartTime.Value)
	endTime, _ := util.ParseTimestamp(req.EndTime.Value)
	exam := domain.NewExam(
		strings.TrimSpace(req.Title.Value),
		req.Description.Value,
		strings.TrimSpace(req.Code.Value),
		int(req.Duration.Value),
		startTime,
		endTime,
	)
	if req.IsActive.HasValue() {
		exam.IsActive = req.IsActive.Value
	}
	if errs := s.validator.ValidateEntity(exam); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.CreateExam(ctx, exam); err != nil {
		return nil, translateError(ctx, err, examMessages, "create exam")
	}

	logger.Get().Info("Exam created",
		zap.String("exam_id", exam.ID),
		zap.String("code", exam.Code),
	)
	resp := dto.ToExamResponse(exam)
	return &resp, nil
}

// UpdateExam writes only the fields present in req. A body without any
// known field returns the stored exam unchanged.
func (s *examServiceImpl) UpdateExam(ctx context.Context, id string, req *dto.ExamRequest) (_ *dto.ExamResponse, err error) {
	ctx, span := startSpan(ctx, "ExamService.UpdateExam")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("exam.id", id))

	if errs := s.validator.ValidateExamRequest(req, true); len(errs) > 0 {
		return nil, errs
	}

	update := toExamUpdate(req)
	if update.IsEmpty() {
		return s.GetExam(ctx, id)
	}

	var updated *domain.Exam
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetExamByID(txCtx, id)
		if err != nil {
			return err
		}
		update.Apply(current)
		if errs := s.validator.ValidateEntity(current); len(errs) > 0 {
			return errs
		}
		if err := s.repo.UpdateExam(txCtx, id, update); err != nil {
			return err
		}
		updated, err = s.repo.GetExamByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, translateError(ctx, err, examMessages, "update exam")
	}

	logger.Get().Info("Exam updated", zap.String("exam_id", id))
	resp := dto.ToExamResponse(updated)
	return &resp, nil
}

// DeleteExam removes the exam. Its questions and results go with it through
// the foreign key cascade.
func (s *examServiceImpl) DeleteExam(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "ExamService.DeleteExam")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("exam.id", id))

	if err := s.repo.DeleteExam(ctx, id); err != nil {
		return translateError(ctx, err, examMessages, "delete exam")
	}
	logger.Get().Info("Exam deleted", zap.String("exam_id", id))
	return nil
}

// toExamUpdate keeps every non-null field of req. Timestamps were already
// checked by the validator.
func toExamUpdate(req *dto.ExamRequest) domain.ExamUpdate {
	var u domain.ExamUpdate
	if req.Title.HasValue() {
		u.Title = domain.SetField(strings.TrimSpace(req.Title.Value))
	}
	if req.Description.HasValue() {
		u.Description = domain.SetField(req.Description.Value)
	}
	if req.Code.HasValue() {
		u.Code = domain.SetField(strings.TrimSpace(req.Code.Value))
	}
	if req.Duration.HasValue() {
		u.Duration = domain.SetField(int(req.Duration.Value))
	}
	if req.StartTime.HasValue() {
		t, _ := util.ParseTimestamp(req.StartTime.Value)
		u.StartTime = domain.SetField(t)
	}
	if req.EndTime.HasValue() {
		t, _ := util.ParseTimestamp(req.EndTime.Value)
		u.EndTime = domain.SetField(t)
	}
	if req.IsActive.HasValue() {
		u.IsActive = domain.SetField(req.IsActive.Value)
	}
	return u
}
