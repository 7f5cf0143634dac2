package delivery

import (
	"net/http"

	"warmup-monitor-backend/internal/account/repository"
	"warmup-monitor-backend/internal/account/usecase"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the dashboard's account, domain and stats reads.
type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase}
}

// GetAccounts lists accounts with sort, band filter and search.
// GET /api/accounts?sortBy=warmupScore&sortOrder=asc&filter=all&search=
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	opts := repository.ListOptions{
		SortBy:    c.DefaultQuery("sortBy", "warmupScore"),
		SortOrder: c.DefaultQuery("sortOrder", "asc"),
		Filter:    c.DefaultQuery("filter", "all"),
		Search:    c.Query("search"),
	}

	accounts, err := h.accountUsecase.ListAccounts(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// GetDomains lists domains with nested account summaries.
// GET /api/domains?sortBy=averageScore&sortOrder=asc
func (h *AccountHandler) GetDomains(c *gin.Context) {
	domains, err := h.accountUsecase.ListDomains(
		c.DefaultQuery("sortBy", "averageScore"),
		c.DefaultQuery("sortOrder", "asc"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch domains"})
		return
	}

	c.JSON(http.StatusOK, domains)
}

// GetStats returns per-band totals and the last successful sync time.
// GET /api/stats
func (h *AccountHandler) GetStats(c *gin.Context) {
	stats, err := h.accountUsecase.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
