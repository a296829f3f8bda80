package handler

import (
	"trademart/internal/database"
	"trademart/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := map[string]string{"database": "up"}
	code := fiber.StatusOK
	msg := response.MessageOK

	if h.db == nil || h.db.Ping(c.Context()) != nil {
		status["database"] = "down"
		code = fiber.StatusServiceUnavailable
		msg = "degraded"
	}

	return response.Success(c, code, msg, status)
}
