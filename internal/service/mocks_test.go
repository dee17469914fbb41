package service

import (
	"context"

	"exam-api/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockExamRepository ---
type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) ListExams(ctx context.Context) ([]*domain.Exam, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Exam), args.Error(1)
}

func (m *MockExamRepository) ListExamsByCode(ctx context.Context, code string) ([]*domain.Exam, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Exam), args.Error(1)
}

func (m *MockExamRepository) GetExamByID(ctx context.Context, id string) (*domain.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exam), args.Error(1)
}

func (m *MockExamRepository) CreateExam(ctx context.Context, exam *domain.Exam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) UpdateExam(ctx context.Context, id string, update domain.ExamUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockExamRepository) DeleteExam(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) ListQuestionsByExam(ctx context.Context, examID string) ([]*domain.Question, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) UpdateQuestion(ctx context.Context, id string, update domain.QuestionUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) ReplaceOptions(ctx context.Context, questionID string, options []domain.Option) error {
	args := m.Called(ctx, questionID, options)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteOptions(ctx context.Context, questionID string) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

// --- MockResultRepository ---
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) ListResultsByExam(ctx context.Context, examID string) ([]*domain.ExamResult, error) {
	args := m.Called(ctx, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExamResult), args.Error(1)
}

func (m *MockResultRepository) GetResultByID(ctx context.Context, id string) (*domain.ExamResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExamResult), args.Error(1)
}

func (m *MockResultRepository) ResultExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockResultRepository) CreateResult(ctx context.Context, result *domain.ExamResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) CreateAnswers(ctx context.Context, resultID string, answers []domain.Answer) error {
	args := m.Called(ctx, resultID, answers)
	return args.Error(0)
}

func (m *MockResultRepository) UpdateResultSummary(ctx context.Context, id string, update domain.GradingUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockResultRepository) SetManualGrade(ctx context.Context, resultID, questionID string, grade *float64) (int64, error) {
	args := m.Called(ctx, resultID, questionID, grade)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResultRepository) DeleteAnswers(ctx context.Context, resultID string) error {
	args := m.Called(ctx, resultID)
	return args.Error(0)
}

func (m *MockResultRepository) DeleteResult(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// inlineTxManager runs fn directly and counts how many transactions were opened.
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
