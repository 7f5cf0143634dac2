package delivery

import (
	"net/http"

	"warmup-monitor-backend/internal/campaign/usecase"

	"github.com/gin-gonic/gin"
)

// CampaignHandler serves the dashboard's campaign reads.
type CampaignHandler struct {
	campaignUsecase usecase.CampaignUsecase
}

func NewCampaignHandler(campaignUsecase usecase.CampaignUsecase) *CampaignHandler {
	return &CampaignHandler{campaignUsecase: campaignUsecase}
}

// GetCampaigns lists campaigns.
// GET /api/campaigns?sortBy=name&sortOrder=asc
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignUsecase.ListCampaigns(
		c.DefaultQuery("sortBy", "name"),
		c.DefaultQuery("sortOrder", "asc"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns"})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}
