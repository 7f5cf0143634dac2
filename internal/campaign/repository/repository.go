package repository

import (
	"time"

	"warmup-monitor-backend/internal/campaign/domain"
)

// CampaignRepository defines data access for campaigns.
type CampaignRepository interface {
	// UpsertFromSync writes one campaign from a sync batch, matched by the
	// upstream campaign id.
	UpsertFromSync(campaign *domain.Campaign) error

	// FindByCampaignID returns the campaign or nil when absent.
	FindByCampaignID(campaignID string) (*domain.Campaign, error)

	// List returns campaigns for the dashboard.
	List(sortBy, sortOrder string) ([]*domain.Campaign, error)

	// DeleteSyncedBefore removes campaigns whose watermark predates the batch
	// start.
	DeleteSyncedBefore(t time.Time) (int64, error)

	Count() (int64, error)
}
