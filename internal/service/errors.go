package service

import (
	"context"
	"errors"

	"exam-api/internal/domain"
	"exam-api/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "exam-api/internal/service"

// Client facing messages.
const (
	MsgExamNotFound      = "Exam not found"
	MsgExamCodeExists    = "Exam code already exists"
	MsgQuestionNotFound  = "Question not found"
	MsgResultNotFound    = "Result not found"
	MsgUnknownExam       = "Referenced exam does not exist"
	MsgDuplicateAnswer   = "Duplicate answer for the same question"
	MsgStillReferenced   = "Record is still referenced"
	MsgValueTooLarge     = "Value too large for the field"
	MsgInternalError     = "Internal server error"
	MsgCodeParamRequired = "Code query parameter is required"
	MsgExamIDRequired    = "examId query parameter is required"
)

// errorMessages names what a repository sentinel means for one resource.
type errorMessages struct {
	notFound string
	conflict string
}

var (
	examMessages     = errorMessages{notFound: MsgExamNotFound, conflict: MsgExamCodeExists}
	questionMessages = errorMessages{notFound: MsgQuestionNotFound, conflict: MsgStillReferenced}
	resultMessages   = errorMessages{notFound: MsgResultNotFound, conflict: MsgDuplicateAnswer}
)

// translateError maps repository sentinels onto DomainErrors. Errors that are
// already domain level pass through unchanged.
func translateError(ctx context.Context, err error, msgs errorMessages, op string) error {
	if err == nil {
		return nil
	}

	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return domain.NewNotFoundError(msgs.notFound)
	case errors.Is(err, domain.ErrUniqueViolation):
		return domain.NewConflictError(msgs.conflict, err)
	case errors.Is(err, domain.ErrForeignKeyViolation):
		return domain.NewError(domain.CodeInvalidInput, MsgUnknownExam, err)
	case errors.Is(err, domain.ErrChildRecordsExist):
		return domain.NewConflictError(MsgStillReferenced, err)
	case errors.Is(err, domain.ErrValueTooLarge):
		return domain.NewError(domain.CodeInvalidInput, MsgValueTooLarge, err)
	}

	logger.Get().Error("Unexpected repository error",
		zap.String("operation", op),
		zap.String("trace_id", trace.SpanContextFromContext(ctx).TraceID().String()),
		zap.Error(err),
	)
	return domain.NewInternalError(MsgInternalError, err)
}

// startSpan opens a child span for a service operation.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

// endSpan records err on span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
