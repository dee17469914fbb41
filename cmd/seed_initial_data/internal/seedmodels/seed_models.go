package seedmodels

import "exam-api/internal/dto"

// SeedExam is one exam in the JSON seed file. The exam fields use the same
// names as the POST /exams body; questions use the POST /questions body
// without examId, which the seeder fills in.
type SeedExam struct {
	dto.ExamRequest
	Questions []dto.QuestionRequest `json:"questions"`
}
