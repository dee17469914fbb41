package service

import (
	"context"
	"strings"

	"exam-api/internal/domain"
	"exam-api/internal/dto"
	"exam-api/internal/logger"
	"exam-api/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuestionService defines the question use cases exposed over HTTP.
type QuestionService interface {
	ListQuestionsByExam(ctx context.Context, examID string) ([]dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, id string, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, id string) error
}

type questionServiceImpl struct {
	repo      domain.QuestionRepository
	txManager domain.TransactionManager
	validator *validation.Validator
}

// NewQuestionService creates a new instance of QuestionService.
func NewQuestionService(repo domain.QuestionRepository, txManager domain.TransactionManager, validator *validation.Validator) QuestionService {
	return &questionServiceImpl{
		repo:      repo,
		txManager: txManager,
		validator: validator,
	}
}

func (s *questionServiceImpl) ListQuestionsByExam(ctx context.Context, examID string) (_ []dto.QuestionResponse, err error) {
	ctx, span := startSpan(ctx, "QuestionService.ListQuestionsByExam")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(examID) == "" {
		return nil, domain.NewInvalidInputError(MsgExamIDRequired)
	}
	span.SetAttributes(attribute.String("exam.id", examID))

	questions, err := s.repo.ListQuestionsByExam(ctx, examID)
	if err != nil {
		return nil, translateError(ctx, err, questionMessages, "list questions")
	}
	return dto.ToQuestionResponses(questions), nil
}

func (s *questionServiceImpl) GetQuestion(ctx context.Context, id string) (_ *dto.QuestionResponse, err error) {
	ctx, span := startSpan(ctx, "QuestionService.GetQuestion")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("question.id", id))

	question, err := s.repo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, translateError(ctx, err, questionMessages, "get question")
	}
	resp := dto.ToQuestionResponse(question)
	return &resp, nil
}

// CreateQuestion stores the question and its options in one transaction.
func (s *questionServiceImpl) CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (_ *dto.QuestionResponse, err error) {
	ctx, span := startSpan(ctx, "QuestionService.CreateQuestion")
	defer func() { endSpan(span, err) }()

	if errs := s.validator.ValidateQuestionRequest(req, false); len(errs) > 0 {
		return nil, errs
	}

	question := domain.NewQuestion(
		strings.TrimSpace(req.ExamID.Value),
		strings.TrimSpace(req.Type.Value),
		req.Text.Value,
		int(req.Points.Value),
	)
	question.ImageURL = req.ImageURL.Ptr()
	question.CorrectAnswer = req.CorrectAnswer.Ptr()
	question.SampleAnswer = req.SampleAnswer.Ptr()
	question.Difficulty = req.Difficulty.Ptr()
	if req.Keywords.HasValue() && req.Keywords.Value != nil {
		question.Keywords = req.Keywords.Value
	}
	if req.Tags.HasValue() && req.Tags.Value != nil {
		question.Tags = req.Tags.Value
	}
	if req.Options.HasValue() {
		question.Options = dto.ToDomainOptions(req.Options.Value)
	}
	if errs := s.validator.ValidateEntity(question); len(errs) > 0 {
		return nil, errs
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.CreateQuestion(txCtx, question)
	})
	if err != nil {
		return nil, translateError(ctx, err, questionMessages, "create question")
	}

	logger.Get().Info("Question created",
		zap.String("question_id", question.ID),
		zap.String("exam_id", question.ExamID),
		zap.Int("options", len(question.Options)),
	)
	resp := dto.ToQuestionResponse(question)
	return &resp, nil
}

// UpdateQuestion writes the present fields and, when options is sent,
// replaces the whole option set. Both happen in one transaction.
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, id string, req *dto.QuestionRequest) (_ *dto.QuestionResponse, err error) {
	ctx, span := startSpan(ctx, "QuestionService.UpdateQuestion")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("question.id", id))

	if errs := s.validator.ValidateQuestionRequest(req, true); len(errs) > 0 {
		return nil, errs
	}

	update := toQuestionUpdate(req)
	if !update.HasColumnChanges() && !update.Options.Set {
		return s.GetQuestion(ctx, id)
	}

	var updated *domain.Question
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetQuestionByID(txCtx, id)
		if err != nil {
			return err
		}
		update.Apply(current)
		if errs := s.validator.ValidateEntity(current); len(errs) > 0 {
			return errs
		}
		if err := s.repo.UpdateQuestion(txCtx, id, update); err != nil {
			return err
		}
		if update.Options.Set {
			if err := s.repo.ReplaceOptions(txCtx, id, update.Options.Value); err != nil {
				return err
			}
		}
		updated, err = s.repo.GetQuestionByID(txCtx, id)
		return err
	})
	if err != nil {
		return nil, translateError(ctx, err, questionMessages, "update question")
	}

	logger.Get().Info("Question updated",
		zap.String("question_id", id),
		zap.Bool("options_replaced", update.Options.Set),
	)
	resp := dto.ToQuestionResponse(updated)
	return &resp, nil
}

// DeleteQuestion removes the question together with its options.
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "QuestionService.DeleteQuestion")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("question.id", id))

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteOptions(txCtx, id); err != nil {
			return err
		}
		return s.repo.DeleteQuestion(txCtx, id)
	})
	if err != nil {
		return translateError(ctx, err, questionMessages, "delete question")
	}

	logger.Get().Info("Question deleted", zap.String("question_id", id))
	return nil
}

// toQuestionUpdate converts a partial payload. Null is only honoured for the
// nullable columns; null keywords, tags or options are ignored.
func toQuestionUpdate(req *dto.QuestionRequest) domain.QuestionUpdate {
	var u domain.QuestionUpdate
	if req.ExamID.HasValue() {
		u.ExamID = domain.SetField(strings.TrimSpace(req.ExamID.Value))
	}
	if req.Type.HasValue() {
		u.Type = domain.SetField(strings.TrimSpace(req.Type.Value))
	}
	if req.Text.HasValue() {
		u.Text = domain.SetField(req.Text.Value)
	}
	if req.Points.HasValue() {
		u.Points = domain.SetField(int(req.Points.Value))
	}
	if req.ImageURL.Present {
		u.ImageURL = domain.SetField(req.ImageURL.Ptr())
	}
	if req.CorrectAnswer.Present {
		u.CorrectAnswer = domain.SetField(req.CorrectAnswer.Ptr())
	}
	if req.SampleAnswer.Present {
		u.SampleAnswer = domain.SetField(req.SampleAnswer.Ptr())
	}
	if req.Difficulty.Present {
		u.Difficulty = domain.SetField(req.Difficulty.Ptr())
	}
	if req.Keywords.HasValue() && req.Keywords.Value != nil {
		u.Keywords = domain.SetField(req.Keywords.Value)
	}
	if req.Tags.HasValue() && req.Tags.Value != nil {
		u.Tags = domain.SetField(req.Tags.Value)
	}
	if req.Options.HasValue() {
		u.Options = domain.SetField(dto.ToDomainOptions(req.Options.Value))
	}
	return u
}
