package handler

import (
	"net/http"
	"time"

	"stockward/internal/repository"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct {
	logs repository.OperationLogRepository
}

func NewLogsHandler(logs repository.OperationLogRepository) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// List returns the audit trail, newest first, optionally filtered by
// operation type and creation time range (RFC 3339).
func (h *LogsHandler) List(c *gin.Context) {
	filter := repository.OperationLogFilter{
		OperationType: c.Query("operation_type"),
		Limit:         intQuery(c, "limit", 100),
	}
	if raw := c.Query("start"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.Start = &t
		}
	}
	if raw := c.Query("end"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.End = &t
		}
	}

	logs, err := h.logs.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
