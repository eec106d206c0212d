package handlers

import (
	"context"
	"net/http"

	"inventorysync/internal/events"
	"inventorysync/internal/logger"

	"github.com/gin-gonic/gin"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type SyncHandler struct {
	publisher EventPublisher
	logger    *logger.Logger
}

func NewSyncHandler(publisher EventPublisher, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{publisher: publisher, logger: logger}
}

// Trigger queues a sync run for the worker.
func (h *SyncHandler) Trigger(c *gin.Context) {
	h.publish(c, events.Event{Type: events.TypeSyncRequested, RequestedBy: c.ClientIP()})
}

type reindexRequest struct {
	IndexerIDs []string `json:"indexer_ids"`
}

// Reindex queues a rebuild of the given indexes, or of all synced indexes
// when none are named.
func (h *SyncHandler) Reindex(c *gin.Context) {
	var req reindexRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}
	h.publish(c, events.Event{Type: events.TypeReindexRequested, IndexerIDs: req.IndexerIDs, RequestedBy: c.ClientIP()})
}

func (h *SyncHandler) publish(c *gin.Context, event events.Event) {
	if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to queue %s: %v", event.Type, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to queue request"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "type": event.Type})
}
