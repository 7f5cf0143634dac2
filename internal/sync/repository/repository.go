package repository

import (
	"time"

	"warmup-monitor-backend/internal/sync/domain"
)

// SyncLogRepository is the append-only audit ledger for batch outcomes.
type SyncLogRepository interface {
	// Append records one batch outcome.
	Append(accountsCount int, success bool, errorMessage string) error

	// LastSuccessfulAt returns the timestamp of the newest successful batch,
	// or nil when none exists.
	LastSuccessfulAt() (*time.Time, error)

	// List returns the newest entries up to limit.
	List(limit int) ([]*domain.SyncLog, error)
}
