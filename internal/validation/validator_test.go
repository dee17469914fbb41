package validation

import (
	"encoding/json"
	"testing"
	"time"

	"exam-api/internal/domain"
	"exam-api/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs domain.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateExamRequest_Create(t *testing.T) {
	v := NewValidator()

	var req dto.ExamRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Midterm", "description": "", "startTime": "tomorrow"}`), &req))

	errs := v.ValidateExamRequest(&req, false)

	assert.ElementsMatch(t, []string{"description", "code", "duration", "startTime", "endTime"}, fields(errs))
	for _, e := range errs {
		if e.Field == "startTime" {
			assert.Equal(t, domain.CodeInvalidFormat, e.Code)
		}
	}
}

func TestValidateExamRequest_Partial(t *testing.T) {
	v := NewValidator()

	var req dto.ExamRequest
	require.NoError(t, json.Unmarshal([]byte(`{"duration": 0, "isActive": false}`), &req))
	assert.Empty(t, v.ValidateExamRequest(&req, true))

	require.NoError(t, json.Unmarshal([]byte(`{"code": ""}`), &req))
	assert.Equal(t, []string{"code"}, fields(v.ValidateExamRequest(&req, true)))
}

func TestValidateQuestionRequest(t *testing.T) {
	v := NewValidator()

	var req dto.QuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"examId": "e1", "type": "essay", "text": "Why?", "points": "0"}`), &req))

	errs := v.ValidateQuestionRequest(&req, false)
	require.Len(t, errs, 1)
	assert.Equal(t, "points", errs[0].Field)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)

	var partial dto.QuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"imageUrl": null}`), &partial))
	assert.Empty(t, v.ValidateQuestionRequest(&partial, true))
}

func TestValidateCreateResultRequest(t *testing.T) {
	v := NewValidator()

	var req dto.CreateResultRequest
	body := `{"examId": "e1", "studentName": "Faisa", "score": 0, "correctCount": 0, "answers": [{"questionId": ""}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	errs := v.ValidateCreateResultRequest(&req)
	assert.ElementsMatch(t, []string{"totalQuestions", "answers[0].questionId"}, fields(errs))
}

func TestValidateGradeResultRequest(t *testing.T) {
	v := NewValidator()

	var req dto.GradeResultRequest
	require.NoError(t, json.Unmarshal([]byte(`{"manualGrades": {"q1": 7.5}, "gradingStatus": "graded"}`), &req))
	assert.Empty(t, v.ValidateGradeResultRequest(&req))

	require.NoError(t, json.Unmarshal([]byte(`{"manualGrades": {" ": 1}, "gradingStatus": ""}`), &req))
	assert.Len(t, v.ValidateGradeResultRequest(&req), 2)
}

func TestValidateEntity(t *testing.T) {
	v := NewValidator()

	q := domain.NewQuestion("e1", "single_choice", "Pick one", 2)
	q.Options = []domain.Option{{Text: "A"}, {Text: ""}}

	errs := v.ValidateEntity(q)
	require.Len(t, errs, 1)
	assert.Equal(t, "options[1].text", errs[0].Field)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	exam := domain.NewExam("Midterm", "desc", "M1", -5, start, start.Add(time.Hour))
	errs = v.ValidateEntity(exam)
	require.Len(t, errs, 1)
	assert.Equal(t, "duration", errs[0].Field)
	assert.Equal(t, "duration must be at least 0", errs[0].Message)

	for _, end := range []time.Time{start, start.Add(-time.Minute)} {
		exam = domain.NewExam("Midterm", "desc", "M1", 60, start, end)
		errs = v.ValidateEntity(exam)
		require.Len(t, errs, 1)
		assert.Equal(t, "endTime", errs[0].Field)
		assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
		assert.Equal(t, "endTime must be after startTime", errs[0].Message)
	}

	result := domain.NewExamResult("e1", "Faisa", 0, 0, 0)
	assert.Empty(t, v.ValidateEntity(result))
}
