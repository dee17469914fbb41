package domain

import (
	"context"
	"time"
)

// ExamResult is a student's submission for an exam together with its answers
type ExamResult struct {
	ID             string
	ExamID         string  `validate:"required"`
	StudentName    string  `validate:"required,max=255"`
	Score          float64 `validate:"gte=0"`
	CorrectCount   int     `validate:"gte=0"`
	TotalQuestions int     `validate:"gte=0"`
	GradingStatus  *string
	SubmittedAt    time.Time
	Answers        []Answer `validate:"dive"`
}

// Answer is the submitted value for one question of a result
type Answer struct {
	ID            string
	ResultID      string
	QuestionID    string `validate:"required"`
	Answer        string
	ManualGrade   *float64
	Feedback      *string
	GradingStatus *string
}

// NewExamResult creates an ExamResult submitted now with no answers
func NewExamResult(examID, studentName string, score float64, correctCount, totalQuestions int) *ExamResult {
	return &ExamResult{
		ExamID:         examID,
		StudentName:    studentName,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		SubmittedAt:    time.Now(),
		Answers:        []Answer{},
	}
}

// GradingUpdate carries a manual grading pass over one result.
// ManualGrades is keyed by question id; a nil grade clears the stored one.
type GradingUpdate struct {
	Score         Field[float64]
	GradingStatus Field[*string]
	ManualGrades  map[string]*float64
}

// ResultRepository defines the interface for result and answer persistence.
type ResultRepository interface {
	ListResultsByExam(ctx context.Context, examID string) ([]*ExamResult, error)
	GetResultByID(ctx context.Context, id string) (*ExamResult, error)
	ResultExists(ctx context.Context, id string) (bool, error)
	CreateResult(ctx context.Context, result *ExamResult) error
	CreateAnswers(ctx context.Context, resultID string, answers []Answer) error
	UpdateResultSummary(ctx context.Context, id string, update GradingUpdate) error

	// SetManualGrade updates the answer keyed by (questionID, resultID) and
	// reports how many rows were touched. Zero is not an error. A nil grade
	// stores NULL.
	SetManualGrade(ctx context.Context, resultID, questionID string, grade *float64) (int64, error)
	DeleteAnswers(ctx context.Context, resultID string) error
	DeleteResult(ctx context.Context, id string) error
}

// TransactionManager runs fn inside a single database transaction. Repository
// calls made with the ctx passed to fn join that transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
