package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"exam-api/internal/domain"
	"exam-api/internal/dto"
	"exam-api/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func questionRequest(t *testing.T, body string) *dto.QuestionRequest {
	t.Helper()
	var req dto.QuestionRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func newTestQuestionService() (QuestionService, *MockQuestionRepository, *inlineTxManager) {
	repo := new(MockQuestionRepository)
	tx := &inlineTxManager{}
	return NewQuestionService(repo, tx, validation.NewValidator()), repo, tx
}

func sampleQuestion() *domain.Question {
	q := domain.NewQuestion("exam-1", domain.QuestionTypeSingleChoice, "Which keyword starts a goroutine?", 5)
	q.ID = "q-1"
	image := "https://example.com/go.png"
	q.ImageURL = &image
	q.Options = []domain.Option{
		{ID: "o-1", QuestionID: "q-1", Text: "go", IsCorrect: true},
		{ID: "o-2", QuestionID: "q-1", Text: "defer"},
	}
	return q
}

func TestQuestionService_CreateQuestion(t *testing.T) {
	svc, repo, tx := newTestQuestionService()

	repo.On("CreateQuestion", mock.Anything, mock.MatchedBy(func(q *domain.Question) bool {
		return q.ExamID == "exam-1" && q.Points == 3 && len(q.Options) == 2 &&
			q.Options[0].IsCorrect && q.Keywords != nil && q.SampleAnswer == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Question).ID = "q-1"
	}).Return(nil).Once()

	resp, err := svc.CreateQuestion(context.Background(), questionRequest(t, `{
		"examId": "exam-1", "type": "single_choice", "text": "Pick one", "points": "3",
		"options": [{"text": "A", "isCorrect": true}, {"text": "B"}]
	}`))

	require.NoError(t, err)
	assert.Equal(t, "q-1", resp.ID)
	assert.Len(t, resp.Options, 2)
	assert.Equal(t, []string{}, resp.Tags)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestQuestionService_CreateQuestion_UnknownExam(t *testing.T) {
	svc, repo, _ := newTestQuestionService()

	repo.On("CreateQuestion", mock.Anything, mock.Anything).
		Return(fmt.Errorf("create question: %w", domain.ErrForeignKeyViolation)).Once()

	_, err := svc.CreateQuestion(context.Background(), questionRequest(t, `{
		"examId": "nope", "type": "essay", "text": "Explain channels", "points": 10
	}`))

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	assert.Equal(t, MsgUnknownExam, domainErr.Message)
}

func TestQuestionService_CreateQuestion_EmptyOptionText(t *testing.T) {
	svc, repo, _ := newTestQuestionService()

	_, err := svc.CreateQuestion(context.Background(), questionRequest(t, `{
		"examId": "exam-1", "type": "single_choice", "text": "Pick one", "points": 1,
		"options": [{"text": ""}]
	}`))

	var validationErrs domain.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Equal(t, "options[0].text", validationErrs[0].Field)
	repo.AssertNotCalled(t, "CreateQuestion", mock.Anything, mock.Anything)
}

func TestQuestionService_UpdateQuestion_ReplacesOptions(t *testing.T) {
	svc, repo, tx := newTestQuestionService()
	current := sampleQuestion()

	repo.On("GetQuestionByID", mock.Anything, "q-1").Return(current, nil).Twice()
	repo.On("UpdateQuestion", mock.Anything, "q-1", mock.MatchedBy(func(u domain.QuestionUpdate) bool {
		return u.ImageURL.Set && u.ImageURL.Value == nil && !u.Text.Set && !u.Keywords.Set
	})).Return(nil).Once()
	repo.On("ReplaceOptions", mock.Anything, "q-1", []domain.Option{{Text: "chan", IsCorrect: true}}).Return(nil).Once()

	resp, err := svc.UpdateQuestion(context.Background(), "q-1", questionRequest(t, `{
		"imageUrl": null, "keywords": null,
		"options": [{"text": "chan", "isCorrect": true}]
	}`))

	require.NoError(t, err)
	assert.Nil(t, resp.ImageURL)
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestQuestionService_UpdateQuestion_WithoutOptionsKeepsThem(t *testing.T) {
	svc, repo, _ := newTestQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "q-1").Return(sampleQuestion(), nil).Twice()
	repo.On("UpdateQuestion", mock.Anything, "q-1", mock.Anything).Return(nil).Once()

	resp, err := svc.UpdateQuestion(context.Background(), "q-1", questionRequest(t, `{"points": 8}`))

	require.NoError(t, err)
	assert.Len(t, resp.Options, 2)
	repo.AssertNotCalled(t, "ReplaceOptions", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuestionService_UpdateQuestion_ZeroPointsRejected(t *testing.T) {
	svc, repo, _ := newTestQuestionService()

	_, err := svc.UpdateQuestion(context.Background(), "q-1", questionRequest(t, `{"points": 0}`))

	var validationErrs domain.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	assert.Equal(t, domain.CodeOutOfRange, validationErrs[0].Code)
	repo.AssertNotCalled(t, "GetQuestionByID", mock.Anything, mock.Anything)
}

func TestQuestionService_DeleteQuestion(t *testing.T) {
	svc, repo, tx := newTestQuestionService()

	repo.On("DeleteOptions", mock.Anything, "q-1").Return(nil).Once()
	repo.On("DeleteQuestion", mock.Anything, "q-1").Return(nil).Once()

	require.NoError(t, svc.DeleteQuestion(context.Background(), "q-1"))
	assert.Equal(t, 1, tx.calls)
	repo.AssertExpectations(t)
}

func TestQuestionService_DeleteQuestion_NotFound(t *testing.T) {
	svc, repo, _ := newTestQuestionService()

	repo.On("DeleteOptions", mock.Anything, "missing").Return(nil).Once()
	repo.On("DeleteQuestion", mock.Anything, "missing").
		Return(fmt.Errorf("delete question: %w", domain.ErrRecordNotFound)).Once()

	err := svc.DeleteQuestion(context.Background(), "missing")

	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, MsgQuestionNotFound, err.Error())
}

func TestQuestionService_ListQuestionsByExam_RequiresExamID(t *testing.T) {
	svc, repo, _ := newTestQuestionService()

	_, err := svc.ListQuestionsByExam(context.Background(), "")

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, MsgExamIDRequired, domainErr.Message)
	repo.AssertNotCalled(t, "ListQuestionsByExam", mock.Anything, mock.Anything)
}
