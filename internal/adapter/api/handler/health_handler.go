package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	botUsername string
}

func NewHealthHandler(botUsername string) *HealthHandler {
	return &HealthHandler{
		botUsername: botUsername,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Bot is running",
		"bot":    h.botUsername,
		"time":   time.Now().Format(time.RFC3339),
	})
}
