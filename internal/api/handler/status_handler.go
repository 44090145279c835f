package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/scrapehub/listings-api/internal/api/domain"
	"github.com/scrapehub/listings-api/internal/api/dto"
	"github.com/scrapehub/listings-api/internal/status"
)

// StatusHandler handles the status push channel and the mark-running endpoint
type StatusHandler struct {
	logger *slog.Logger
	store  StatusStore
	hub    *status.Hub
}

// NewStatusHandler creates a new StatusHandler instance
func NewStatusHandler(logger *slog.Logger, store StatusStore, hub *status.Hub) *StatusHandler {
	return &StatusHandler{
		logger: logger,
		store:  store,
		hub:    hub,
	}
}

// StreamUpdates handles GET /status-updates
// Holds the response open and streams each published event as an SSE frame
// until the client disconnects. The subscription is removed on disconnect.
func (h *StatusHandler) StreamUpdates(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	h.logger.Info("Status subscriber connected",
		slog.String("subscriber_id", sub.ID),
	)
	defer h.logger.Info("Status subscriber disconnected",
		slog.String("subscriber_id", sub.ID),
	)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			if err := sse.Encode(w, sse.Event{Data: ev}); err != nil {
				h.logger.Warn("Failed to write event to subscriber",
					slog.String("subscriber_id", sub.ID),
					slog.Any("error", err),
				)
				return false
			}
			return true
		}
	})
}

// Webhook handles POST /webhook
// Accepts a status event from the upstream scraper and publishes it.
func (h *StatusHandler) Webhook(c *gin.Context) {
	var ev status.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	h.logger.Info("Status event received",
		slog.String("script", ev.Script),
		slog.String("status", ev.Status),
	)

	h.hub.Publish(c.Request.Context(), ev)

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Data received successfully"})
}

// MarkRunning handles PUT /api/status/:scriptName
// Sets the script's status row to "running". A script without a status row
// gets a 404.
func (h *StatusHandler) MarkRunning(c *gin.Context) {
	script := c.Param("scriptName")

	rows, err := h.store.SetScriptStatus(c.Request.Context(), script, domain.ScriptStatusRunning)
	if err != nil {
		h.logger.Error("Failed to mark script running",
			slog.String("script", script),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	if rows == 0 {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: fmt.Sprintf("Variable %s not found", script)})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "status altered!"})
}
