package repository

import (
	"time"

	"warmup-monitor-backend/internal/alert/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormAlertRepository implements AlertRepository using GORM
type gormAlertRepository struct {
	db *gorm.DB
}

func NewGormAlertRepository(db *gorm.DB) AlertRepository {
	return &gormAlertRepository{db: db}
}

func (r *gormAlertRepository) RecordDegradation(candidate *domain.Alert) (*domain.Alert, bool, error) {
	var stored *domain.Alert
	written := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var open domain.Alert
		err := tx.Where("entity_type = ? AND entity_id = ? AND resolved_at IS NULL",
			candidate.EntityType, candidate.EntityID).
			Order("created_at DESC").First(&open).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == gorm.ErrRecordNotFound {
			candidate.ID = uuid.New().String()
			if createErr := tx.Create(candidate).Error; createErr != nil {
				return createErr
			}
			stored = candidate
			written = true
			return nil
		}

		if open.Score == candidate.Score {
			// Same data redelivered; leave the row alone.
			stored = &open
			return nil
		}

		open.Score = candidate.Score
		open.Type = candidate.Type
		open.Message = candidate.Message
		open.UpdatedAt = time.Now()
		if updateErr := tx.Save(&open).Error; updateErr != nil {
			return updateErr
		}
		stored = &open
		written = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return stored, written, nil
}

func (r *gormAlertRepository) FindByID(id string) (*domain.Alert, error) {
	var alert domain.Alert
	err := r.db.Where("id = ?", id).First(&alert).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *gormAlertRepository) List(limit int) ([]*domain.Alert, error) {
	var alerts []*domain.Alert
	err := r.db.Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (r *gormAlertRepository) SetResolved(alert *domain.Alert, resolvedAt *time.Time) error {
	alert.ResolvedAt = resolvedAt
	alert.UpdatedAt = time.Now()
	return r.db.Save(alert).Error
}

func (r *gormAlertRepository) MarkEmailedSince(since time.Time) (int64, error) {
	result := r.db.Model(&domain.Alert{}).
		Where("email_sent = ? AND updated_at >= ?", false, since).
		Updates(map[string]interface{}{"email_sent": true, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

func (r *gormAlertRepository) PurgeDuplicates() (int64, int64, error) {
	var alerts []*domain.Alert
	if err := r.db.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return 0, 0, err
	}

	seen := make(map[string]bool)
	var idsToDelete []string
	for _, alert := range alerts {
		key := string(alert.EntityType) + "-" + alert.EntityID
		if seen[key] {
			idsToDelete = append(idsToDelete, alert.ID)
			continue
		}
		seen[key] = true
	}

	var deleted int64
	// Delete in chunks to keep the IN clause bounded.
	for start := 0; start < len(idsToDelete); start += 100 {
		end := start + 100
		if end > len(idsToDelete) {
			end = len(idsToDelete)
		}
		result := r.db.Where("id IN ?", idsToDelete[start:end]).Delete(&domain.Alert{})
		if result.Error != nil {
			return deleted, int64(len(seen)), result.Error
		}
		deleted += result.RowsAffected
	}

	return deleted, int64(len(seen)), nil
}

func (r *gormAlertRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Alert{}).Count(&count).Error
	return count, err
}
