package api

import (
	accountDelivery "warmup-monitor-backend/internal/account/delivery"
	accountUsecasePkg "warmup-monitor-backend/internal/account/usecase"
	alertDelivery "warmup-monitor-backend/internal/alert/delivery"
	alertUsecasePkg "warmup-monitor-backend/internal/alert/usecase"
	campaignDelivery "warmup-monitor-backend/internal/campaign/delivery"
	campaignUsecasePkg "warmup-monitor-backend/internal/campaign/usecase"
	syncDelivery "warmup-monitor-backend/internal/sync/delivery"
	syncUsecasePkg "warmup-monitor-backend/internal/sync/usecase"
	"warmup-monitor-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	webhookHandler  *syncDelivery.WebhookHandler
	accountHandler  *accountDelivery.AccountHandler
	campaignHandler *campaignDelivery.CampaignHandler
	alertHandler    *alertDelivery.AlertHandler
}

func NewHandler(
	syncUc syncUsecasePkg.SyncUsecase,
	accountUc accountUsecasePkg.AccountUsecase,
	campaignUc campaignUsecasePkg.CampaignUsecase,
	alertUc alertUsecasePkg.AlertUsecase,
	cfg *config.Config,
) *Handler {
	return &Handler{
		webhookHandler:  syncDelivery.NewWebhookHandler(syncUc, cfg.WebhookSecret),
		accountHandler:  accountDelivery.NewAccountHandler(accountUc),
		campaignHandler: campaignDelivery.NewCampaignHandler(campaignUc),
		alertHandler:    alertDelivery.NewAlertHandler(alertUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.webhookHandler, h.accountHandler, h.campaignHandler, h.alertHandler)

	return r.Run(addr)
}
