package usecase

import (
	"time"

	"warmup-monitor-backend/internal/account/domain"
	"warmup-monitor-backend/internal/account/repository"
	syncrepo "warmup-monitor-backend/internal/sync/repository"
)

// Stats is the dashboard's headline card data.
type Stats struct {
	Total      int        `json:"total"`
	Healthy    int        `json:"healthy"`
	Warning    int        `json:"warning"`
	Critical   int        `json:"critical"`
	LastSyncAt *time.Time `json:"lastSyncAt"`
}

// AccountUsecase serves the dashboard's account and domain reads.
type AccountUsecase interface {
	ListAccounts(opts repository.ListOptions) ([]*domain.EmailAccount, error)
	ListDomains(sortBy, sortOrder string) ([]*domain.Domain, error)
	GetStats() (*Stats, error)
}

// accountUsecase implements AccountUsecase
type accountUsecase struct {
	accountRepo repository.AccountRepository
	domainRepo  repository.DomainRepository
	syncLogRepo syncrepo.SyncLogRepository
}

func NewAccountUsecase(accountRepo repository.AccountRepository, domainRepo repository.DomainRepository, syncLogRepo syncrepo.SyncLogRepository) AccountUsecase {
	return &accountUsecase{
		accountRepo: accountRepo,
		domainRepo:  domainRepo,
		syncLogRepo: syncLogRepo,
	}
}

func (u *accountUsecase) ListAccounts(opts repository.ListOptions) ([]*domain.EmailAccount, error) {
	return u.accountRepo.List(opts)
}

func (u *accountUsecase) ListDomains(sortBy, sortOrder string) ([]*domain.Domain, error) {
	return u.domainRepo.List(sortBy, sortOrder)
}

func (u *accountUsecase) GetStats() (*Stats, error) {
	scores, err := u.accountRepo.ListScores()
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: len(scores)}
	for _, score := range scores {
		switch domain.StatusForScore(score) {
		case domain.StatusHealthy:
			stats.Healthy++
		case domain.StatusWarning:
			stats.Warning++
		default:
			stats.Critical++
		}
	}

	lastSync, err := u.syncLogRepo.LastSuccessfulAt()
	if err != nil {
		return nil, err
	}
	stats.LastSyncAt = lastSync

	return stats, nil
}
