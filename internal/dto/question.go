package dto

import (
	"time"

	"exam-api/internal/domain"
)

// OptionRequest is one answer option in a question payload
type OptionRequest struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionRequest is the body of POST /questions and PUT /questions/:id.
// On update a present options array replaces every existing option.
// @Description Question create or update payload
type QuestionRequest struct {
	ExamID        Optional[string]          `json:"examId" swaggertype:"string"`
	Type          Optional[string]          `json:"type" swaggertype:"string" example:"single_choice"`
	Text          Optional[string]          `json:"text" swaggertype:"string"`
	Points        Optional[FlexInt]         `json:"points" swaggertype:"integer"`
	ImageURL      Optional[string]          `json:"imageUrl" swaggertype:"string"`
	CorrectAnswer Optional[string]          `json:"correctAnswer" swaggertype:"string"`
	SampleAnswer  Optional[string]          `json:"sampleAnswer" swaggertype:"string"`
	Keywords      Optional[[]string]        `json:"keywords" swaggertype:"array,string"`
	Difficulty    Optional[string]          `json:"difficulty" swaggertype:"string"`
	Tags          Optional[[]string]        `json:"tags" swaggertype:"array,string"`
	Options       Optional[[]OptionRequest] `json:"options"`
}

// OptionResponse represents an option in the API response
type OptionResponse struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
}

// QuestionResponse represents a question with its options
// @Description Question information
type QuestionResponse struct {
	ID            string           `json:"id"`
	ExamID        string           `json:"examId"`
	Type          string           `json:"type"`
	Text          string           `json:"text"`
	Points        int              `json:"points"`
	ImageURL      *string          `json:"imageUrl"`
	CorrectAnswer *string          `json:"correctAnswer"`
	SampleAnswer  *string          `json:"sampleAnswer"`
	Keywords      []string         `json:"keywords"`
	Difficulty    *string          `json:"difficulty"`
	Tags          []string         `json:"tags"`
	Options       []OptionResponse `json:"options"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func ToQuestionResponse(q *domain.Question) QuestionResponse {
	options := make([]OptionResponse, 0, len(q.Options))
	for _, o := range q.Options {
		options = append(options, OptionResponse{
			ID:         o.ID,
			QuestionID: o.QuestionID,
			Text:       o.Text,
			IsCorrect:  o.IsCorrect,
		})
	}
	return QuestionResponse{
		ID:            q.ID,
		ExamID:        q.ExamID,
		Type:          q.Type,
		Text:          q.Text,
		Points:        q.Points,
		ImageURL:      q.ImageURL,
		CorrectAnswer: q.CorrectAnswer,
		SampleAnswer:  q.SampleAnswer,
		Keywords:      nonNil(q.Keywords),
		Difficulty:    q.Difficulty,
		Tags:          nonNil(q.Tags),
		Options:       options,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func ToQuestionResponses(questions []*domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, ToQuestionResponse(q))
	}
	return out
}

// ToDomainOptions converts option payloads, keeping their order.
func ToDomainOptions(reqs []OptionRequest) []domain.Option {
	options := make([]domain.Option, 0, len(reqs))
	for _, r := range reqs {
		options = append(options, domain.Option{Text: r.Text, IsCorrect: r.IsCorrect})
	}
	return options
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
