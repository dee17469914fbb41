package handler

import (
	"exam-api/internal/middleware"
	"exam-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Exam     *ExamHandler
	Question *QuestionHandler
	Result   *ResultHandler
	Health   *HealthHandler
}

// RegisterRoutes mounts the resource and operational routes on router.
func RegisterRoutes(router fiber.Router, h Handlers) {
	router.Get("/", h.Health.Root)
	router.Get("/health", h.Health.Health)

	exams := router.Group("/exams")
	exams.Get("/", middleware.OptionalQuery("code", service.MsgCodeParamRequired), h.Exam.ListExams)
	exams.Post("/", h.Exam.CreateExam)
	exams.Get("/:id", h.Exam.GetExam)
	exams.Put("/:id", h.Exam.UpdateExam)
	exams.Delete("/:id", h.Exam.DeleteExam)

	questions := router.Group("/questions")
	questions.Get("/", middleware.RequireQuery("examId", service.MsgExamIDRequired), h.Question.ListQuestions)
	questions.Post("/", h.Question.CreateQuestion)
	questions.Get("/:id", h.Question.GetQuestion)
	questions.Put("/:id", h.Question.UpdateQuestion)
	questions.Delete("/:id", h.Question.DeleteQuestion)

	results := router.Group("/results")
	results.Get("/", middleware.RequireQuery("examId", service.MsgExamIDRequired), h.Result.ListResults)
	results.Post("/", h.Result.CreateResult)
	results.Get("/:id", h.Result.GetResult)
	results.Patch("/:id", h.Result.GradeResult)
	results.Delete("/:id", h.Result.DeleteResult)
}
