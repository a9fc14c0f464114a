package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartretail/assistant/internal/rag"
	"github.com/smartretail/assistant/internal/telemetry"
	"github.com/smartretail/assistant/models"
)

// Answerer is the slice of the RAG engine the chat handler needs.
type Answerer interface {
	Answer(ctx context.Context, messages []models.ChatMessage) (models.ChatResponse, error)
}

// ChatHandler serves the grounded question-answering endpoint.
type ChatHandler struct {
	Engine Answerer
}

func (h *ChatHandler) Register(e *echo.Echo) {
	e.POST("/chat", h.chat)
}

// chat answers one conversation. Invalid input is the caller's fault (400);
// every pipeline failure surfaces as a single opaque 500, never a partial
// answer.
func (h *ChatHandler) chat(c echo.Context) error {
	started := time.Now()

	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		telemetry.ObserveChat(telemetry.OutcomeBadRequest, time.Since(started))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.Engine.Answer(c.Request().Context(), req.Messages)
	if err != nil {
		if errors.Is(err, rag.ErrInvalidInput) {
			telemetry.ObserveChat(telemetry.OutcomeInvalidInput, time.Since(started))
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		telemetry.ObserveChat(telemetry.OutcomeError, time.Since(started))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	telemetry.ObserveChat(telemetry.OutcomeOK, time.Since(started))
	return c.JSON(http.StatusOK, resp)
}
