package handler

import (
	"exam-api/internal/dto"
	"exam-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ResultHandler handles exam result HTTP requests
type ResultHandler struct {
	service service.ResultService
}

// NewResultHandler creates a new ResultHandler instance
func NewResultHandler(service service.ResultService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

// ListResults godoc
// @Summary List the results of an exam
// @Tags results
// @Produce json
// @Param examId query string true "Exam ID"
// @Success 200 {array} dto.ResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /results [get]
func (h *ResultHandler) ListResults(c *fiber.Ctx) error {
	examID, _ := queryLocal(c, "examId")
	results, err := h.service.ListResultsByExam(c.UserContext(), examID)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// GetResult godoc
// @Summary Get a result with its answers
// @Tags results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{id} [get]
func (h *ResultHandler) GetResult(c *fiber.Ctx) error {
	result, err := h.service.GetResult(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// CreateResult godoc
// @Summary Submit an exam result
// @Tags results
// @Accept json
// @Produce json
// @Param request body dto.CreateResultRequest true "Result"
// @Success 201 {object} dto.ResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /results [post]
func (h *ResultHandler) CreateResult(c *fiber.Ctx) error {
	var req dto.CreateResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.CreateResult(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GradeResult godoc
// @Summary Grade a result
// @Description Applies manual grades per question id and optionally overrides score and gradingStatus.
// @Tags results
// @Accept json
// @Produce json
// @Param id path string true "Result ID"
// @Param request body dto.GradeResultRequest true "Grades"
// @Success 200 {object} dto.ResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{id} [patch]
func (h *ResultHandler) GradeResult(c *fiber.Ctx) error {
	var req dto.GradeResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.GradeResult(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// DeleteResult godoc
// @Summary Delete a result and its answers
// @Tags results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /results/{id} [delete]
func (h *ResultHandler) DeleteResult(c *fiber.Ctx) error {
	if err := h.service.DeleteResult(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Result deleted successfully"})
}
