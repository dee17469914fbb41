package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewExam(t *testing.T) {
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	exam := NewExam("Midterm", "Chapter 1-5", "M1", 120, start, end)

	assert.Equal(t, "Midterm", exam.Title)
	assert.Equal(t, "M1", exam.Code)
	assert.Equal(t, 120, exam.Duration)
	assert.False(t, exam.IsActive)
	assert.False(t, exam.CreatedAt.IsZero())
	assert.Equal(t, exam.CreatedAt, exam.UpdatedAt)
}

func TestExamUpdate_IsEmpty(t *testing.T) {
	assert.True(t, ExamUpdate{}.IsEmpty())
	assert.False(t, ExamUpdate{IsActive: SetField(false)}.IsEmpty())
	assert.False(t, ExamUpdate{Duration: SetField(0)}.IsEmpty())
}

func TestExamUpdate_Apply(t *testing.T) {
	exam := &Exam{Title: "Old", Description: "desc", Code: "C1", Duration: 60, IsActive: true}

	ExamUpdate{
		Title:    SetField("New"),
		Duration: SetField(0),
		IsActive: SetField(false),
	}.Apply(exam)

	assert.Equal(t, "New", exam.Title)
	assert.Equal(t, 0, exam.Duration)
	assert.False(t, exam.IsActive)
	// untouched
	assert.Equal(t, "desc", exam.Description)
	assert.Equal(t, "C1", exam.Code)
}

func TestQuestionUpdate_HasColumnChanges(t *testing.T) {
	assert.False(t, QuestionUpdate{}.HasColumnChanges())
	assert.False(t, QuestionUpdate{Options: SetField([]Option{{Text: "A"}})}.HasColumnChanges())
	assert.True(t, QuestionUpdate{ImageURL: SetField[*string](nil)}.HasColumnChanges())
}

func TestNewQuestion_Defaults(t *testing.T) {
	q := NewQuestion("exam1", QuestionTypeEssay, "Explain goroutines", 5)

	assert.NotNil(t, q.Keywords)
	assert.NotNil(t, q.Tags)
	assert.NotNil(t, q.Options)
	assert.Empty(t, q.Options)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Exam not found")))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", NewNotFoundError("Exam not found"))))
	assert.False(t, IsNotFound(NewConflictError("Exam code already exists", nil)))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestDomainError_Unwrap(t *testing.T) {
	err := NewConflictError("Exam code already exists", ErrUniqueViolation)

	assert.True(t, errors.Is(err, ErrUniqueViolation))
	assert.Equal(t, "Exam code already exists: unique constraint violated", err.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("title"),
		NewOutOfRangeError("points", 0, 1, 0),
	}
	assert.Equal(t, "title is required; points must be at least 1", errs.Error())
}
