package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"exam-api/internal/domain"
	"exam-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error  string                   `json:"error"`
	Code   string                   `json:"code"`
	Fields []domain.ValidationError `json:"fields"`
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedError  string
	}{
		{
			name:           "not found",
			err:            domain.NewNotFoundError("Exam not found"),
			expectedStatus: fiber.StatusNotFound,
			expectedCode:   "NOT_FOUND",
			expectedError:  "Exam not found",
		},
		{
			name:           "conflict",
			err:            domain.NewConflictError("Exam code already exists", errors.New("ORA-00001")),
			expectedStatus: fiber.StatusConflict,
			expectedCode:   "CONFLICT",
			expectedError:  "Exam code already exists",
		},
		{
			name:           "invalid input",
			err:            domain.NewInvalidInputError("Invalid request body"),
			expectedStatus: fiber.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
			expectedError:  "Invalid request body",
		},
		{
			name:           "missing fields",
			err:            domain.ValidationErrors{domain.NewMissingFieldError("title")},
			expectedStatus: fiber.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedError:  "Missing required fields",
		},
		{
			name:           "format only",
			err:            domain.ValidationErrors{domain.NewInvalidFormatError("startTime", "tomorrow")},
			expectedStatus: fiber.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedError:  "Request validation failed",
		},
		{
			name:           "fiber error",
			err:            fiber.NewError(fiber.StatusMethodNotAllowed, "Method Not Allowed"),
			expectedStatus: fiber.StatusMethodNotAllowed,
			expectedCode:   "HTTP_ERROR",
			expectedError:  "Method Not Allowed",
		},
		{
			name:           "unknown",
			err:            errors.New("driver exploded"),
			expectedStatus: fiber.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
			expectedError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			body := decodeError(t, resp.Body)
			assert.Equal(t, tt.expectedCode, body.Code)
			assert.Equal(t, tt.expectedError, body.Error)
		})
	}
}

func TestErrorHandler_ListsFields(t *testing.T) {
	app := newTestApp()
	app.Post("/", func(c *fiber.Ctx) error {
		return domain.ValidationErrors{
			domain.NewMissingFieldError("code"),
			domain.NewOutOfRangeError("points", 0, 1, 0),
		}
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)

	body := decodeError(t, resp.Body)
	require.Len(t, body.Fields, 2)
	assert.Equal(t, "code", body.Fields[0].Field)
	assert.Equal(t, domain.CodeOutOfRange, body.Fields[1].Code)
}

func TestQueryParams(t *testing.T) {
	app := newTestApp()
	app.Get("/questions", middleware.RequireQuery("examId", "examId query parameter is required"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("examId").(string))
	})
	app.Get("/exams", middleware.OptionalQuery("code", "Code query parameter is required"), func(c *fiber.Ctx) error {
		if code, ok := c.Locals("code").(string); ok {
			return c.SendString("code=" + code)
		}
		return c.SendString("all")
	})

	tests := []struct {
		target         string
		expectedStatus int
		expectedBody   string
	}{
		{"/questions?examId=e1", fiber.StatusOK, "e1"},
		{"/questions?examId=%20", fiber.StatusBadRequest, "examId query parameter is required"},
		{"/questions", fiber.StatusBadRequest, "examId query parameter is required"},
		{"/exams", fiber.StatusOK, "all"},
		{"/exams?code=M1", fiber.StatusOK, "code=M1"},
		{"/exams?code=", fiber.StatusBadRequest, "Code query parameter is required"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(raw), tt.expectedBody)
		})
	}
}

func TestMetrics(t *testing.T) {
	metrics := middleware.NewMetrics()
	app := newTestApp()
	app.Use(middleware.Tracing())
	app.Use(middleware.RequestLogger())
	app.Use(metrics.Middleware())
	app.Get("/exams/:id", func(c *fiber.Ctx) error {
		return domain.NewNotFoundError("Exam not found")
	})
	app.Get("/metrics", metrics.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/exams/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Code)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(raw)
	assert.True(t, strings.Contains(text, `exam_api_http_requests_total{method="GET",route="/exams/:id",status="404"} 1`), text)
	assert.Contains(t, text, "exam_api_http_request_duration_seconds")
}
