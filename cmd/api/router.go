package api

import (
	"net/http"
	"time"

	accountDelivery "warmup-monitor-backend/internal/account/delivery"
	alertDelivery "warmup-monitor-backend/internal/alert/delivery"
	campaignDelivery "warmup-monitor-backend/internal/campaign/delivery"
	syncDelivery "warmup-monitor-backend/internal/sync/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	webhookHandler *syncDelivery.WebhookHandler,
	accountHandler *accountDelivery.AccountHandler,
	campaignHandler *campaignDelivery.CampaignHandler,
	alertHandler *alertDelivery.AlertHandler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().Format(time.RFC3339),
			})
		})

		// Telemetry ingestion from the automation tool
		api.POST("/webhook", webhookHandler.HandleWebhook)

		// Dashboard reads
		api.GET("/accounts", accountHandler.GetAccounts)
		api.GET("/domains", accountHandler.GetDomains)
		api.GET("/stats", accountHandler.GetStats)
		api.GET("/campaigns", campaignHandler.GetCampaigns)

		// Alerts
		alerts := api.Group("/alerts")
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.PATCH("/:id", alertHandler.ResolveAlert)
			alerts.POST("/cleanup", alertHandler.CleanupAlerts)
		}
	}
}
