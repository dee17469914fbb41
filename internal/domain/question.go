package domain

import (
	"context"
	"time"
)

// Common question types. The type is stored as given; nothing in the core
// logic branches on it.
const (
	QuestionTypeSingleChoice   = "single_choice"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
	QuestionTypeEssay          = "essay"
)

// Question belongs to an exam and owns its options
type Question struct {
	ID            string
	ExamID        string `validate:"required"`
	Type          string `validate:"required,max=50"`
	Text          string `validate:"required"`
	Points        int    `validate:"gt=0"`
	ImageURL      *string
	CorrectAnswer *string
	SampleAnswer  *string
	Keywords      []string
	Difficulty    *string
	Tags          []string
	Options       []Option `validate:"dive"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Option is one selectable answer of a question
type Option struct {
	ID         string
	QuestionID string
	Text       string `validate:"required"`
	IsCorrect  bool
}

// NewQuestion creates a Question with empty keyword, tag and option sets
func NewQuestion(examID, questionType, text string, points int) *Question {
	now := time.Now()
	return &Question{
		ExamID:    examID,
		Type:      questionType,
		Text:      text,
		Points:    points,
		Keywords:  []string{},
		Tags:      []string{},
		Options:   []Option{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// QuestionUpdate is the set of question columns a client asked to change.
// Nullable columns carry a *string so that an explicit null clears them.
// When Options is set the whole option set is replaced.
type QuestionUpdate struct {
	ExamID        Field[string]
	Type          Field[string]
	Text          Field[string]
	Points        Field[int]
	ImageURL      Field[*string]
	CorrectAnswer Field[*string]
	SampleAnswer  Field[*string]
	Keywords      Field[[]string]
	Difficulty    Field[*string]
	Tags          Field[[]string]
	Options       Field[[]Option]
}

// HasColumnChanges reports whether any question column (options excluded) is set.
func (u QuestionUpdate) HasColumnChanges() bool {
	return u.ExamID.Set || u.Type.Set || u.Text.Set || u.Points.Set || u.ImageURL.Set ||
		u.CorrectAnswer.Set || u.SampleAnswer.Set || u.Keywords.Set || u.Difficulty.Set || u.Tags.Set
}

// Apply copies every present field onto q, replacing the option set when given.
func (u QuestionUpdate) Apply(q *Question) {
	if u.ExamID.Set {
		q.ExamID = u.ExamID.Value
	}
	if u.Type.Set {
		q.Type = u.Type.Value
	}
	if u.Text.Set {
		q.Text = u.Text.Value
	}
	if u.Points.Set {
		q.Points = u.Points.Value
	}
	if u.ImageURL.Set {
		q.ImageURL = u.ImageURL.Value
	}
	if u.CorrectAnswer.Set {
		q.CorrectAnswer = u.CorrectAnswer.Value
	}
	if u.SampleAnswer.Set {
		q.SampleAnswer = u.SampleAnswer.Value
	}
	if u.Keywords.Set {
		q.Keywords = u.Keywords.Value
	}
	if u.Difficulty.Set {
		q.Difficulty = u.Difficulty.Value
	}
	if u.Tags.Set {
		q.Tags = u.Tags.Value
	}
	if u.Options.Set {
		q.Options = u.Options.Value
	}
}

// QuestionRepository defines the interface for question and option persistence.
// Writes that span both tables are expected to run inside TransactionManager.WithTransaction.
type QuestionRepository interface {
	ListQuestionsByExam(ctx context.Context, examID string) ([]*Question, error)
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	CreateQuestion(ctx context.Context, question *Question) error
	UpdateQuestion(ctx context.Context, id string, update QuestionUpdate) error
	DeleteQuestion(ctx context.Context, id string) error

	// ReplaceOptions deletes every option of the question and inserts options in order.
	ReplaceOptions(ctx context.Context, questionID string, options []Option) error
	DeleteOptions(ctx context.Context, questionID string) error
}
