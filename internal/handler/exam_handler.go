package handler

import (
	"exam-api/internal/dto"
	"exam-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ExamHandler handles exam-related HTTP requests
type ExamHandler struct {
	service service.ExamService
}

// NewExamHandler creates a new ExamHandler instance
func NewExamHandler(service service.ExamService) *ExamHandler {
	return &ExamHandler{
		service: service,
	}
}

// ListExams godoc
// @Summary List exams
// @Description Returns every exam, newest first. With code set only exams with that exact code are returned.
// @Tags exams
// @Produce json
// @Param code query string false "Exam code"
// @Success 200 {array} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /exams [get]
func (h *ExamHandler) ListExams(c *fiber.Ctx) error {
	var (
		exams []dto.ExamResponse
		err   error
	)
	if code, ok := queryLocal(c, "code"); ok {
		exams, err = h.service.ListExamsByCode(c.UserContext(), code)
	} else {
		exams, err = h.service.ListExams(c.UserContext())
	}
	if err != nil {
		return err
	}
	return c.JSON(exams)
}

// GetExam godoc
// @Summary Get an exam
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /exams/{id} [get]
func (h *ExamHandler) GetExam(c *fiber.Ctx) error {
	exam, err := h.service.GetExam(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(exam)
}

// CreateExam godoc
// @Summary Create an exam
// @Description New exams are inactive unless isActive is sent.
// @Tags exams
// @Accept json
// @Produce json
// @Param request body dto.ExamRequest true "Exam"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /exams [post]
func (h *ExamHandler) CreateExam(c *fiber.Ctx) error {
	var req dto.ExamRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	exam, err := h.service.CreateExam(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(exam)
}

// UpdateExam godoc
// @Summary Update an exam
// @Description Only the fields present in the body are written; 0 and false are values.
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param request body dto.ExamRequest true "Fields to change"
// @Success 200 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /exams/{id} [put]
func (h *ExamHandler) UpdateExam(c *fiber.Ctx) error {
	var req dto.ExamRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	exam, err := h.service.UpdateExam(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(exam)
}

// DeleteExam godoc
// @Summary Delete an exam
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{id} [delete]
func (h *ExamHandler) DeleteExam(c *fiber.Ctx) error {
	if err := h.service.DeleteExam(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Exam deleted successfully"})
}
