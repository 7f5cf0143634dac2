package repository

import (
	"time"

	"warmup-monitor-backend/internal/alert/domain"
)

// AlertRepository defines data access for alerts. RecordDegradation is the
// write path the engine invariant rests on: at most one unresolved alert per
// (entity type, entity id).
type AlertRepository interface {
	// RecordDegradation merges a degradation candidate into alert storage
	// inside one transaction. When no open alert exists for the entity key the
	// candidate is created; when one exists with a different score it is
	// updated in place (score, severity, message); an unchanged score writes
	// nothing. Returns the stored alert and whether a write happened.
	RecordDegradation(candidate *domain.Alert) (*domain.Alert, bool, error)

	// FindByID returns the alert or nil when absent.
	FindByID(id string) (*domain.Alert, error)

	// List returns the newest alerts up to limit.
	List(limit int) ([]*domain.Alert, error)

	// SetResolved stamps or clears ResolvedAt.
	SetResolved(alert *domain.Alert, resolvedAt *time.Time) error

	// MarkEmailedSince flags alerts written since the given time as emailed.
	MarkEmailedSince(since time.Time) (int64, error)

	// PurgeDuplicates deletes all but the newest alert per entity key and
	// returns (deleted, remaining unique keys). Repair tool, not part of
	// normal ingestion.
	PurgeDuplicates() (int64, int64, error)

	Count() (int64, error)
}
