package repository

import (
	"strings"
	"time"

	"warmup-monitor-backend/internal/account/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// accountSortColumns whitelists sortable fields; anything else falls back to
// the warmup score.
var accountSortColumns = map[string]string{
	"email":         "email",
	"warmupScore":   "warmup_score",
	"previousScore": "previous_score",
	"status":        "status",
	"lastSyncedAt":  "last_synced_at",
	"createdAt":     "created_at",
}

// gormAccountRepository implements AccountRepository using GORM
type gormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) AccountRepository {
	return &gormAccountRepository{db: db}
}

func (r *gormAccountRepository) UpsertFromSync(account *domain.EmailAccount) (*domain.EmailAccount, *float64, error) {
	var previousScore *float64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.EmailAccount
		err := tx.Where("email = ?", account.Email).First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == gorm.ErrRecordNotFound {
			account.ID = uuid.New().String()
			account.PreviousScore = nil
			return tx.Create(account).Error
		}

		prior := existing.WarmupScore
		previousScore = &prior

		account.ID = existing.ID
		account.CreatedAt = existing.CreatedAt
		account.PreviousScore = &prior
		return tx.Save(account).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return account, previousScore, nil
}

func (r *gormAccountRepository) FindByEmail(email string) (*domain.EmailAccount, error) {
	var account domain.EmailAccount
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *gormAccountRepository) List(opts ListOptions) ([]*domain.EmailAccount, error) {
	query := r.db.Model(&domain.EmailAccount{}).Preload("Domain")

	switch opts.Filter {
	case "healthy":
		query = query.Where("warmup_score >= ?", domain.AlertThreshold)
	case "warning":
		query = query.Where("warmup_score >= ? AND warmup_score < ?", domain.CriticalThreshold, domain.AlertThreshold)
	case "critical":
		query = query.Where("warmup_score < ?", domain.CriticalThreshold)
	}

	if opts.Search != "" {
		pattern := "%" + strings.ToLower(opts.Search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	column, ok := accountSortColumns[opts.SortBy]
	if !ok {
		column = "warmup_score"
	}
	direction := "ASC"
	if strings.EqualFold(opts.SortOrder, "desc") {
		direction = "DESC"
	}

	var accounts []*domain.EmailAccount
	err := query.Order(column + " " + direction).Find(&accounts).Error
	return accounts, err
}

func (r *gormAccountRepository) ListScores() ([]float64, error) {
	var scores []float64
	err := r.db.Model(&domain.EmailAccount{}).Pluck("warmup_score", &scores).Error
	return scores, err
}

func (r *gormAccountRepository) DeleteSyncedBefore(t time.Time) (int64, error) {
	result := r.db.Where("last_synced_at < ?", t).Delete(&domain.EmailAccount{})
	return result.RowsAffected, result.Error
}

func (r *gormAccountRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.EmailAccount{}).Count(&count).Error
	return count, err
}

var domainSortColumns = map[string]string{
	"name":         "name",
	"averageScore": "average_score",
	"accountCount": "account_count",
	"createdAt":    "created_at",
}

// gormDomainRepository implements DomainRepository using GORM
type gormDomainRepository struct {
	db *gorm.DB
}

func NewGormDomainRepository(db *gorm.DB) DomainRepository {
	return &gormDomainRepository{db: db}
}

func (r *gormDomainRepository) GetOrCreate(name string) (*domain.Domain, error) {
	var dom domain.Domain
	err := r.db.Where("name = ?", name).First(&dom).Error
	if err == nil {
		return &dom, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	dom = domain.Domain{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := r.db.Create(&dom).Error; err != nil {
		return nil, err
	}
	return &dom, nil
}

func (r *gormDomainRepository) UpdateStats(name string, averageScore float64, accountCount int) error {
	return r.db.Model(&domain.Domain{}).Where("name = ?", name).
		Updates(map[string]interface{}{
			"average_score": averageScore,
			"account_count": accountCount,
			"updated_at":    time.Now(),
		}).Error
}

func (r *gormDomainRepository) List(sortBy, sortOrder string) ([]*domain.Domain, error) {
	column, ok := domainSortColumns[sortBy]
	if !ok {
		column = "average_score"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}

	var domains []*domain.Domain
	err := r.db.Model(&domain.Domain{}).
		Preload("Accounts", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "domain_id", "email", "warmup_score").Order("warmup_score ASC")
		}).
		Order(column + " " + direction).
		Find(&domains).Error
	return domains, err
}

func (r *gormDomainRepository) DeleteEmpty() (int64, error) {
	subquery := r.db.Model(&domain.EmailAccount{}).
		Select("domain_id").Where("domain_id IS NOT NULL")
	result := r.db.Where("id NOT IN (?)", subquery).Delete(&domain.Domain{})
	return result.RowsAffected, result.Error
}

func (r *gormDomainRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Domain{}).Count(&count).Error
	return count, err
}
