package repository

import (
	"time"

	"warmup-monitor-backend/internal/sync/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSyncLogRepository implements SyncLogRepository using GORM
type gormSyncLogRepository struct {
	db *gorm.DB
}

func NewGormSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &gormSyncLogRepository{db: db}
}

func (r *gormSyncLogRepository) Append(accountsCount int, success bool, errorMessage string) error {
	entry := &domain.SyncLog{
		ID:            uuid.New().String(),
		AccountsCount: accountsCount,
		Success:       success,
		ErrorMessage:  errorMessage,
		CreatedAt:     time.Now(),
	}
	return r.db.Create(entry).Error
}

func (r *gormSyncLogRepository) LastSuccessfulAt() (*time.Time, error) {
	var entry domain.SyncLog
	err := r.db.Where("success = ?", true).Order("created_at DESC").First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry.CreatedAt, nil
}

func (r *gormSyncLogRepository) List(limit int) ([]*domain.SyncLog, error) {
	var entries []*domain.SyncLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
