package domain

import (
	"context"
	"time"
)

// Exam represents a scheduled exam identified by a unique code
type Exam struct {
	ID          string
	Title       string    `validate:"required,max=255"`
	Description string    `validate:"required,max=4000"`
	Code        string    `validate:"required,max=64"`
	Duration    int       `validate:"gte=0"`
	StartTime   time.Time
	EndTime     time.Time `validate:"gtfield=StartTime"`
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExam creates a new inactive Exam instance
func NewExam(title, description, code string, duration int, startTime, endTime time.Time) *Exam {
	now := time.Now()
	return &Exam{
		Title:       title,
		Description: description,
		Code:        code,
		Duration:    duration,
		StartTime:   startTime,
		EndTime:     endTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Field is one entry of a partial update. Set reports whether the client sent the field at all,
// so zero values such as 0, false or null can still be written.
type Field[T any] struct {
	Set   bool
	Value T
}

// SetField wraps v as a present update value.
func SetField[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// ExamUpdate is the set of exam columns a client asked to change.
type ExamUpdate struct {
	Title       Field[string]
	Description Field[string]
	Code        Field[string]
	Duration    Field[int]
	StartTime   Field[time.Time]
	EndTime     Field[time.Time]
	IsActive    Field[bool]
}

// IsEmpty reports whether the update touches no column.
func (u ExamUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Description.Set && !u.Code.Set && !u.Duration.Set &&
		!u.StartTime.Set && !u.EndTime.Set && !u.IsActive.Set
}

// Apply copies every present field onto e.
func (u ExamUpdate) Apply(e *Exam) {
	if u.Title.Set {
		e.Title = u.Title.Value
	}
	if u.Description.Set {
		e.Description = u.Description.Value
	}
	if u.Code.Set {
		e.Code = u.Code.Value
	}
	if u.Duration.Set {
		e.Duration = u.Duration.Value
	}
	if u.StartTime.Set {
		e.StartTime = u.StartTime.Value
	}
	if u.EndTime.Set {
		e.EndTime = u.EndTime.Value
	}
	if u.IsActive.Set {
		e.IsActive = u.IsActive.Value
	}
}

// ExamRepository defines the interface for exam persistence.
// Missing rows are reported as ErrRecordNotFound, a duplicate code as ErrUniqueViolation.
type ExamRepository interface {
	ListExams(ctx context.Context) ([]*Exam, error)
	ListExamsByCode(ctx context.Context, code string) ([]*Exam, error)
	GetExamByID(ctx context.Context, id string) (*Exam, error)
	CreateExam(ctx context.Context, exam *Exam) error
	UpdateExam(ctx context.Context, id string, update ExamUpdate) error
	DeleteExam(ctx context.Context, id string) error
}
