package handler_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"exam-api/internal/domain"
	"exam-api/internal/dto"
)

// --- Manual Mocks ---

// MockQuestionService
type MockQuestionService struct {
	ListQuestionsByExamFunc func(ctx context.Context, examID string) ([]dto.QuestionResponse, error)
	GetQuestionFunc         func(ctx context.Context, id string) (*dto.QuestionResponse, error)
	CreateQuestionFunc      func(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestionFunc      func(ctx context.Context, id string, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestionFunc      func(ctx context.Context, id string) error
}

func (m *MockQuestionService) ListQuestionsByExam(ctx context.Context, examID string) ([]dto.QuestionResponse, error) {
	if m.ListQuestionsByExamFunc != nil {
		return m.ListQuestionsByExamFunc(ctx, examID)
	}
	panic("MockQuestionService.ListQuestionsByExamFunc not implemented")
}
func (m *MockQuestionService) GetQuestion(ctx context.Context, id string) (*dto.QuestionResponse, error) {
	if m.GetQuestionFunc != nil {
		return m.GetQuestionFunc(ctx, id)
	}
	panic("MockQuestionService.GetQuestionFunc not implemented")
}
func (m *MockQuestionService) CreateQuestion(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if m.CreateQuestionFunc != nil {
		return m.CreateQuestionFunc(ctx, req)
	}
	panic("MockQuestionService.CreateQuestionFunc not implemented")
}
func (m *MockQuestionService) UpdateQuestion(ctx context.Context, id string, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if m.UpdateQuestionFunc != nil {
		return m.UpdateQuestionFunc(ctx, id, req)
	}
	panic("MockQuestionService.UpdateQuestionFunc not implemented")
}
func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id string) error {
	if m.DeleteQuestionFunc != nil {
		return m.DeleteQuestionFunc(ctx, id)
	}
	panic("MockQuestionService.DeleteQuestionFunc not implemented")
}

// MockResultService
type MockResultService struct {
	ListResultsByExamFunc func(ctx context.Context, examID string) ([]dto.ResultResponse, error)
	GetResultFunc         func(ctx context.Context, id string) (*dto.ResultResponse, error)
	CreateResultFunc      func(ctx context.Context, req *dto.CreateResultRequest) (*dto.ResultResponse, error)
	GradeResultFunc       func(ctx context.Context, id string, req *dto.GradeResultRequest) (*dto.ResultResponse, error)
	DeleteResultFunc      func(ctx context.Context, id string) error
}

func (m *MockResultService) ListResultsByExam(ctx context.Context, examID string) ([]dto.ResultResponse, error) {
	if m.ListResultsByExamFunc != nil {
		return m.ListResultsByExamFunc(ctx, examID)
	}
	panic("MockResultService.ListResultsByExamFunc not implemented")
}
func (m *MockResultService) GetResult(ctx context.Context, id string) (*dto.ResultResponse, error) {
	if m.GetResultFunc != nil {
		return m.GetResultFunc(ctx, id)
	}
	panic("MockResultService.GetResultFunc not implemented")
}
func (m *MockResultService) CreateResult(ctx context.Context, req *dto.CreateResultRequest) (*dto.ResultResponse, error) {
	if m.CreateResultFunc != nil {
		return m.CreateResultFunc(ctx, req)
	}
	panic("MockResultService.CreateResultFunc not implemented")
}
func (m *MockResultService) GradeResult(ctx context.Context, id string, req *dto.GradeResultRequest) (*dto.ResultResponse, error) {
	if m.GradeResultFunc != nil {
		return m.GradeResultFunc(ctx, id, req)
	}
	panic("MockResultService.GradeResultFunc not implemented")
}
func (m *MockResultService) DeleteResult(ctx context.Context, id string) error {
	if m.DeleteResultFunc != nil {
		return m.DeleteResultFunc(ctx, id)
	}
	panic("MockResultService.DeleteResultFunc not implemented")
}

// MockPinger
type MockPinger struct {
	Err error
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Err
}

// memoryExamRepository keeps exams in memory and enforces the unique code
// the way the database index does.
type memoryExamRepository struct {
	mu    sync.Mutex
	seq   int
	exams map[string]*domain.Exam
}

func newMemoryExamRepository() *memoryExamRepository {
	return &memoryExamRepository{exams: make(map[string]*domain.Exam)}
}

func (r *memoryExamRepository) ListExams(ctx context.Context) ([]*domain.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Exam, 0, len(r.exams))
	for _, e := range r.exams {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryExamRepository) ListExamsByCode(ctx context.Context, code string) ([]*domain.Exam, error) {
	all, _ := r.ListExams(ctx)
	out := make([]*domain.Exam, 0, 1)
	for _, e := range all {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryExamRepository) GetExamByID(ctx context.Context, id string) (*domain.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exams[id]
	if !ok {
		return nil, fmt.Errorf("get exam: %w", domain.ErrRecordNotFound)
	}
	copied := *e
	return &copied, nil
}

func (r *memoryExamRepository) CreateExam(ctx context.Context, exam *domain.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exams {
		if e.Code == exam.Code {
			return fmt.Errorf("create exam: %w: %w", domain.ErrUniqueViolation, errors.New("ORA-00001"))
		}
	}
	r.seq++
	exam.ID = fmt.Sprintf("exam-%d", r.seq)
	copied := *exam
	r.exams[exam.ID] = &copied
	return nil
}

func (r *memoryExamRepository) UpdateExam(ctx context.Context, id string, update domain.ExamUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exams[id]
	if !ok {
		return fmt.Errorf("update exam: %w", domain.ErrRecordNotFound)
	}
	update.Apply(e)
	return nil
}

func (r *memoryExamRepository) DeleteExam(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exams[id]; !ok {
		return fmt.Errorf("delete exam: %w", domain.ErrRecordNotFound)
	}
	delete(r.exams, id)
	return nil
}

type passThroughTx struct{}

func (passThroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
