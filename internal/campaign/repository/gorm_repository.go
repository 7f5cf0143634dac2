package repository

import (
	"strings"
	"time"

	"warmup-monitor-backend/internal/campaign/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var campaignSortColumns = map[string]string{
	"name":            "name",
	"status":          "status",
	"leadsCount":      "leads_count",
	"emailsSentCount": "emails_sent_count",
	"replyCount":      "reply_count",
	"lastSyncedAt":    "last_synced_at",
	"createdAt":       "created_at",
}

// gormCampaignRepository implements CampaignRepository using GORM
type gormCampaignRepository struct {
	db *gorm.DB
}

func NewGormCampaignRepository(db *gorm.DB) CampaignRepository {
	return &gormCampaignRepository{db: db}
}

func (r *gormCampaignRepository) UpsertFromSync(campaign *domain.Campaign) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Campaign
		err := tx.Where("campaign_id = ?", campaign.CampaignID).First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == gorm.ErrRecordNotFound {
			campaign.ID = uuid.New().String()
			return tx.Create(campaign).Error
		}

		campaign.ID = existing.ID
		if campaign.CreatedAt.IsZero() {
			campaign.CreatedAt = existing.CreatedAt
		}
		return tx.Save(campaign).Error
	})
}

func (r *gormCampaignRepository) FindByCampaignID(campaignID string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := r.db.Where("campaign_id = ?", campaignID).First(&campaign).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *gormCampaignRepository) List(sortBy, sortOrder string) ([]*domain.Campaign, error) {
	column, ok := campaignSortColumns[sortBy]
	if !ok {
		column = "name"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}

	var campaigns []*domain.Campaign
	err := r.db.Order(column + " " + direction).Find(&campaigns).Error
	return campaigns, err
}

func (r *gormCampaignRepository) DeleteSyncedBefore(t time.Time) (int64, error) {
	result := r.db.Where("last_synced_at < ?", t).Delete(&domain.Campaign{})
	return result.RowsAffected, result.Error
}

func (r *gormCampaignRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Campaign{}).Count(&count).Error
	return count, err
}
