package handler

import (
	"context"
	"time"

	"exam-api/internal/dto"
	"exam-api/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Banner is the plain text body of GET /.
const Banner = "I Love Faisa Nirbita Mahmudah"

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports process and database status
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString(Banner)
}

// Health godoc
// @Summary Health check
// @Description Pings the database. Responds 503 when it is unreachable.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Warn("Database ping failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status:   "degraded",
			Database: "down",
		})
	}
	return c.JSON(dto.HealthResponse{Status: "ok", Database: "up"})
}
