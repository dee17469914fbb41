package dto

import (
	"time"

	"exam-api/internal/domain"
)

// ExamRequest is the body of POST /exams and PUT /exams/:id.
// Create requires every field but isActive; update applies whatever is present.
// @Description Exam create or update payload
type ExamRequest struct {
	Title       Optional[string]  `json:"title" swaggertype:"string"`
	Description Optional[string]  `json:"description" swaggertype:"string"`
	Code        Optional[string]  `json:"code" swaggertype:"string"`
	Duration    Optional[FlexInt] `json:"duration" swaggertype:"integer"`
	StartTime   Optional[string]  `json:"startTime" swaggertype:"string" example:"2025-01-10T09:00:00Z"`
	EndTime     Optional[string]  `json:"endTime" swaggertype:"string" example:"2025-01-10T11:00:00Z"`
	IsActive    Optional[bool]    `json:"isActive" swaggertype:"boolean"`
}

// ExamResponse represents an exam in the API response
// @Description Exam information
type ExamResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Duration    int       `json:"duration"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToExamResponse(exam *domain.Exam) ExamResponse {
	return ExamResponse{
		ID:          exam.ID,
		Title:       exam.Title,
		Description: exam.Description,
		Code:        exam.Code,
		Duration:    exam.Duration,
		StartTime:   exam.StartTime,
		EndTime:     exam.EndTime,
		IsActive:    exam.IsActive,
		CreatedAt:   exam.CreatedAt,
		UpdatedAt:   exam.UpdatedAt,
	}
}

func ToExamResponses(exams []*domain.Exam) []ExamResponse {
	out := make([]ExamResponse, 0, len(exams))
	for _, e := range exams {
		out = append(out, ToExamResponse(e))
	}
	return out
}
