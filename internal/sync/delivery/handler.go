package delivery

import (
	"net/http"

	"warmup-monitor-backend/internal/sync/usecase"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives warmup telemetry batches from the automation tool.
type WebhookHandler struct {
	syncUsecase   usecase.SyncUsecase
	webhookSecret string
}

func NewWebhookHandler(syncUsecase usecase.SyncUsecase, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		syncUsecase:   syncUsecase,
		webhookSecret: webhookSecret,
	}
}

// HandleWebhook processes one telemetry batch.
// POST /api/webhook
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	// Optional shared-secret check, rejected before any processing.
	if h.webhookSecret != "" {
		if c.GetHeader("Authorization") != "Bearer "+h.webhookSecret {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
	}

	var payload any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON payload"})
		return
	}

	result, err := h.syncUsecase.ProcessPayload(payload)
	if err != nil {
		// Internal detail stays in the sync log, not in the response.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if result.NoOp {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "No account or campaign records found in payload",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"processed": gin.H{
			"accounts":  result.AccountsProcessed,
			"campaigns": result.CampaignsProcessed,
		},
		"alerts": gin.H{
			"accounts": result.AccountAlerts,
			"domains":  result.DomainAlerts,
		},
	})
}
