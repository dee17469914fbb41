package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"exam-api/internal/domain"
	"exam-api/internal/dto"
	"exam-api/internal/util"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality.
// Request payloads are checked for presence and format by hand; the
// domain entities built from them are checked with struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{validate: v}
}

// ValidateExamRequest checks an exam payload. With partial set only the
// fields that are present are checked.
func (v *Validator) ValidateExamRequest(req *dto.ExamRequest, partial bool) domain.ValidationErrors {
	var errs domain.ValidationErrors

	errs = appendText(errs, "title", req.Title, partial)
	errs = appendText(errs, "description", req.Description, partial)
	errs = appendText(errs, "code", req.Code, partial)
	if !partial && !req.Duration.HasValue() {
		errs = append(errs, domain.NewMissingFieldError("duration"))
	}
	errs = appendTimestamp(errs, "startTime", req.StartTime, partial)
	errs = appendTimestamp(errs, "endTime", req.EndTime, partial)

	return errs
}

// ValidateQuestionRequest checks a question payload. Points must be positive
// whenever they are given.
func (v *Validator) ValidateQuestionRequest(req *dto.QuestionRequest, partial bool) domain.ValidationErrors {
	var errs domain.ValidationErrors

	errs = appendText(errs, "examId", req.ExamID, partial)
	errs = appendText(errs, "type", req.Type, partial)
	errs = appendText(errs, "text", req.Text, partial)
	if req.Points.HasValue() {
		if req.Points.Value <= 0 {
			errs = append(errs, domain.NewOutOfRangeError("points", int(req.Points.Value), 1, 0))
		}
	} else if !partial {
		errs = append(errs, domain.NewMissingFieldError("points"))
	}

	return errs
}

// ValidateCreateResultRequest checks a result submission. Numeric summary
// fields only need to be present; zero is a valid score.
func (v *Validator) ValidateCreateResultRequest(req *dto.CreateResultRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	errs = appendText(errs, "examId", req.ExamID, false)
	errs = appendText(errs, "studentName", req.StudentName, false)
	if !req.Score.HasValue() {
		errs = append(errs, domain.NewMissingFieldError("score"))
	}
	if !req.CorrectCount.HasValue() {
		errs = append(errs, domain.NewMissingFieldError("correctCount"))
	}
	if !req.TotalQuestions.HasValue() {
		errs = append(errs, domain.NewMissingFieldError("totalQuestions"))
	}
	for i, ans := range req.Answers {
		if strings.TrimSpace(ans.QuestionID) == "" {
			errs = append(errs, domain.NewMissingFieldError(fmt.Sprintf("answers[%d].questionId", i)))
		}
	}

	return errs
}

// ValidateGradeResultRequest checks a grading payload.
func (v *Validator) ValidateGradeResultRequest(req *dto.GradeResultRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	for questionID := range req.ManualGrades {
		if strings.TrimSpace(questionID) == "" {
			errs = append(errs, domain.NewInvalidFormatError("manualGrades", questionID))
		}
	}
	if req.GradingStatus.Present && !req.GradingStatus.Null && strings.TrimSpace(req.GradingStatus.Value) == "" {
		errs = append(errs, domain.NewInvalidFormatError("gradingStatus", req.GradingStatus.Value))
	}

	return errs
}

// ValidateEntity runs the struct tag rules of a domain entity.
func (v *Validator) ValidateEntity(entity interface{}) domain.ValidationErrors {
	err := v.validate.Struct(entity)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{
			Code:    domain.CodeValidation,
			Message: err.Error(),
		}}
	}

	errs := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, toValidationError(fe))
	}
	return errs
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "gt", "gte", "min":
		min, _ := strconv.Atoi(fe.Param())
		if fe.Tag() == "gt" {
			min++
		}
		return domain.NewOutOfRangeError(field, fe.Value(), min, 0)
	case "gtfield":
		param := fe.Param()
		return domain.ValidationError{
			Code:    domain.CodeOutOfRange,
			Field:   field,
			Message: fmt.Sprintf("%s must be after %s", field, strings.ToLower(param[:1])+param[1:]),
		}
	case "max":
		return domain.ValidationError{
			Code:    domain.CodeOutOfRange,
			Field:   field,
			Message: fmt.Sprintf("%s must be at most %s characters", field, fe.Param()),
		}
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

func appendText(errs domain.ValidationErrors, field string, value dto.Optional[string], partial bool) domain.ValidationErrors {
	if partial && !value.HasValue() {
		return errs
	}
	if !value.HasValue() || strings.TrimSpace(value.Value) == "" {
		return append(errs, domain.NewMissingFieldError(field))
	}
	return errs
}

func appendTimestamp(errs domain.ValidationErrors, field string, value dto.Optional[string], partial bool) domain.ValidationErrors {
	if !value.HasValue() {
		if partial {
			return errs
		}
		return append(errs, domain.NewMissingFieldError(field))
	}
	if _, err := util.ParseTimestamp(value.Value); err != nil {
		return append(errs, domain.NewInvalidFormatError(field, value.Value))
	}
	return errs
}

// jsonFieldName reports struct fields under their camelCase JSON names.
func jsonFieldName(fld reflect.StructField) string {
	name := fld.Name
	if name == "ID" {
		return "id"
	}
	for _, initialism := range []string{"ID", "URL"} {
		if strings.HasSuffix(name, initialism) {
			name = strings.TrimSuffix(name, initialism) + initialism[:1] + strings.ToLower(initialism[1:])
		}
	}
	return strings.ToLower(name[:1]) + name[1:]
}
