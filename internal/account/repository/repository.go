package repository

import (
	"time"

	"warmup-monitor-backend/internal/account/domain"
)

// ListOptions carries the dashboard's sort/filter/search parameters.
type ListOptions struct {
	SortBy    string
	SortOrder string
	Filter    string
	Search    string
}

// AccountRepository defines data access for email accounts.
type AccountRepository interface {
	// UpsertFromSync writes one account from a sync batch. The read of the
	// prior score and the write happen in a single transaction; the returned
	// float is the score stored before this batch (nil for a new account).
	UpsertFromSync(account *domain.EmailAccount) (*domain.EmailAccount, *float64, error)

	// FindByEmail returns the account or nil when absent.
	FindByEmail(email string) (*domain.EmailAccount, error)

	// List returns accounts with their domain preloaded.
	List(opts ListOptions) ([]*domain.EmailAccount, error)

	// ListScores returns every stored warmup score (for the stats fold).
	ListScores() ([]float64, error)

	// DeleteSyncedBefore removes accounts whose watermark predates the batch
	// start, enacting full-snapshot semantics.
	DeleteSyncedBefore(t time.Time) (int64, error)

	Count() (int64, error)
}

// DomainRepository defines data access for sending domains.
type DomainRepository interface {
	// GetOrCreate returns the domain with the given name, creating it on
	// first reference.
	GetOrCreate(name string) (*domain.Domain, error)

	// UpdateStats writes the batch-derived aggregate fields.
	UpdateStats(name string, averageScore float64, accountCount int) error

	// List returns domains with nested account summaries.
	List(sortBy, sortOrder string) ([]*domain.Domain, error)

	// DeleteEmpty removes domains with no attributed accounts.
	DeleteEmpty() (int64, error)

	Count() (int64, error)
}
