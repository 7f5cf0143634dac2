package delivery

import (
	"net/http"
	"strconv"

	"warmup-monitor-backend/internal/alert/usecase"

	"github.com/gin-gonic/gin"
)

// AlertHandler serves alert reads, the resolve toggle and the duplicate
// cleanup maintenance endpoint.
type AlertHandler struct {
	alertUsecase usecase.AlertUsecase
}

func NewAlertHandler(alertUsecase usecase.AlertUsecase) *AlertHandler {
	return &AlertHandler{alertUsecase: alertUsecase}
}

// ResolveRequest is the body for the resolve toggle.
type ResolveRequest struct {
	Resolved bool `json:"resolved"`
}

// GetAlerts lists the newest alerts.
// GET /api/alerts?limit=50
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	alerts, err := h.alertUsecase.ListAlerts(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// ResolveAlert toggles an alert's resolved state.
// PATCH /api/alerts/:id
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.alertUsecase.SetResolved(c.Param("id"), req.Resolved)
	if err != nil {
		if err == usecase.ErrAlertNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alert"})
		return
	}

	c.JSON(http.StatusOK, alert)
}

// CleanupAlerts purges duplicate alert rows per entity key.
// POST /api/alerts/cleanup
func (h *AlertHandler) CleanupAlerts(c *gin.Context) {
	deleted, remaining, err := h.alertUsecase.PurgeDuplicates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"deleted":         deleted,
		"uniqueRemaining": remaining,
	})
}
