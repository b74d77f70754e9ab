package handler

import (
	"net/http"
	"time"

	"stockward/internal/apierror"
	"stockward/internal/dto"
	"stockward/internal/model"
	"stockward/internal/repository"
	"stockward/internal/service"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	svc  service.SyncService
	repo repository.SyncQueueRepository
}

func NewSyncHandler(svc service.SyncService, repo repository.SyncQueueRepository) *SyncHandler {
	return &SyncHandler{svc: svc, repo: repo}
}

// Enqueue accepts an operation performed while the client was offline and
// queues it for replay. Re-submitting a known client_op_id returns the
// already-queued item.
func (h *SyncHandler) Enqueue(c *gin.Context) {
	var req dto.EnqueueSyncRequest
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.svc.EnqueueOffline(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, syncItemResponse(item))
}

// Process triggers a drain pass immediately instead of waiting for the
// background loop, and reports the pass counters.
func (h *SyncHandler) Process(c *gin.Context) {
	result, err := h.svc.Process(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.SyncResultResponse{
		Synced:       result.Synced,
		Failed:       result.Failed,
		StillPending: result.StillPending,
	})
}

// Status reports per-status queue depths.
func (h *SyncHandler) Status(c *gin.Context) {
	counts := gin.H{}
	for _, status := range []string{model.SyncStatusPending, model.SyncStatusSynced, model.SyncStatusFailed} {
		n, err := h.repo.CountByStatus(c.Request.Context(), status)
		if err != nil {
			_ = c.Error(err)
			return
		}
		counts[status] = n
	}
	c.JSON(http.StatusOK, counts)
}

func syncItemResponse(item *model.SyncQueueItem) dto.SyncQueueItemResponse {
	resp := dto.SyncQueueItemResponse{
		ID:            item.ID,
		ClientOpID:    item.ClientOpID.String(),
		OperationType: item.OperationType,
		Status:        item.Status,
		RetryCount:    item.RetryCount,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
	}
	if item.LastAttempt != nil {
		resp.LastAttempt = item.LastAttempt.Format(time.RFC3339)
	}
	return resp
}
