package dto

import (
	"time"

	"exam-api/internal/domain"
)

// AnswerRequest is one submitted answer inside a result payload
type AnswerRequest struct {
	QuestionID    string              `json:"questionId"`
	Answer        FlexString          `json:"answer" swaggertype:"string"`
	ManualGrade   Optional[FlexFloat] `json:"manualGrade" swaggertype:"number"`
	Feedback      *string             `json:"feedback"`
	GradingStatus *string             `json:"gradingStatus"`
}

// CreateResultRequest is the body of POST /results.
// score, correctCount and totalQuestions must be present; 0 is accepted.
// @Description Exam result submission
type CreateResultRequest struct {
	ExamID         Optional[string]    `json:"examId" swaggertype:"string"`
	StudentName    Optional[string]    `json:"studentName" swaggertype:"string"`
	Score          Optional[FlexFloat] `json:"score" swaggertype:"number"`
	CorrectCount   Optional[FlexInt]   `json:"correctCount" swaggertype:"integer"`
	TotalQuestions Optional[FlexInt]   `json:"totalQuestions" swaggertype:"integer"`
	Answers        []AnswerRequest     `json:"answers"`
}

// GradeResultRequest is the body of PATCH /results/:id.
// manualGrades maps a question id to the grade given to that answer; a null
// grade clears it.
// @Description Manual grading payload
type GradeResultRequest struct {
	ManualGrades  map[string]Optional[FlexFloat] `json:"manualGrades" swaggertype:"object,number"`
	Score         Optional[FlexFloat]            `json:"score" swaggertype:"number"`
	GradingStatus Optional[string]               `json:"gradingStatus" swaggertype:"string"`
}

// AnswerResponse represents a stored answer
type AnswerResponse struct {
	ID            string   `json:"id"`
	ResultID      string   `json:"resultId"`
	QuestionID    string   `json:"questionId"`
	Answer        string   `json:"answer"`
	ManualGrade   *float64 `json:"manualGrade"`
	Feedback      *string  `json:"feedback"`
	GradingStatus *string  `json:"gradingStatus"`
}

// ResultResponse represents an exam result with its answers
// @Description Exam result information
type ResultResponse struct {
	ID             string           `json:"id"`
	ExamID         string           `json:"examId"`
	StudentName    string           `json:"studentName"`
	Score          float64          `json:"score"`
	CorrectCount   int              `json:"correctCount"`
	TotalQuestions int              `json:"totalQuestions"`
	GradingStatus  *string          `json:"gradingStatus"`
	SubmittedAt    time.Time        `json:"submittedAt"`
	Answers        []AnswerResponse `json:"answers"`
}

func ToResultResponse(r *domain.ExamResult) ResultResponse {
	answers := make([]AnswerResponse, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, AnswerResponse{
			ID:            a.ID,
			ResultID:      a.ResultID,
			QuestionID:    a.QuestionID,
			Answer:        a.Answer,
			ManualGrade:   a.ManualGrade,
			Feedback:      a.Feedback,
			GradingStatus: a.GradingStatus,
		})
	}
	return ResultResponse{
		ID:             r.ID,
		ExamID:         r.ExamID,
		StudentName:    r.StudentName,
		Score:          r.Score,
		CorrectCount:   r.CorrectCount,
		TotalQuestions: r.TotalQuestions,
		GradingStatus:  r.GradingStatus,
		SubmittedAt:    r.SubmittedAt,
		Answers:        answers,
	}
}

func ToResultResponses(results []*domain.ExamResult) []ResultResponse {
	out := make([]ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToResultResponse(r))
	}
	return out
}

// ToDomainAnswers converts answer payloads, keeping their order.
func ToDomainAnswers(reqs []AnswerRequest) []domain.Answer {
	answers := make([]domain.Answer, 0, len(reqs))
	for _, r := range reqs {
		a := domain.Answer{
			QuestionID:    r.QuestionID,
			Answer:        string(r.Answer),
			Feedback:      r.Feedback,
			GradingStatus: r.GradingStatus,
		}
		if r.ManualGrade.HasValue() {
			grade := float64(r.ManualGrade.Value)
			a.ManualGrade = &grade
		}
		answers = append(answers, a)
	}
	return answers
}
