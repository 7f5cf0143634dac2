package usecase

import (
	"errors"
	"sync"
	"time"

	"warmup-monitor-backend/internal/alert/domain"
	"warmup-monitor-backend/internal/alert/repository"
)

// AlertUsecase is the alert engine plus the operator-facing alert operations.
type AlertUsecase interface {
	// RecordDegradation evaluates one degraded entity against the open-alert
	// state. Callers only invoke it for scores below the alert threshold.
	// Returns the open alert and whether this call created or updated it.
	RecordDegradation(entityType domain.EntityType, entityID, entityName string, score float64) (*domain.Alert, bool, error)

	// MarkEmailedSince flags recently written alerts as emailed after a
	// successful digest send.
	MarkEmailedSince(since time.Time) error

	// ListAlerts returns the newest alerts, capped.
	ListAlerts(limit int) ([]*domain.Alert, error)

	// SetResolved toggles an alert's resolved state. Idempotent both ways.
	SetResolved(id string, resolved bool) (*domain.Alert, error)

	// PurgeDuplicates removes duplicate historical alert rows per entity key.
	PurgeDuplicates() (int64, int64, error)
}

var ErrAlertNotFound = errors.New("alert not found")

const defaultListLimit = 50

// alertUsecase implements AlertUsecase
type alertUsecase struct {
	alertRepo repository.AlertRepository

	// entityLocks serializes engine evaluation per entity key so two
	// concurrent batches cannot both miss the open-alert lookup.
	mu          sync.Mutex
	entityLocks map[string]*sync.Mutex
}

func NewAlertUsecase(alertRepo repository.AlertRepository) AlertUsecase {
	return &alertUsecase{
		alertRepo:   alertRepo,
		entityLocks: make(map[string]*sync.Mutex),
	}
}

func (u *alertUsecase) lockEntity(key string) *sync.Mutex {
	u.mu.Lock()
	lock, ok := u.entityLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		u.entityLocks[key] = lock
	}
	u.mu.Unlock()
	lock.Lock()
	return lock
}

func (u *alertUsecase) RecordDegradation(entityType domain.EntityType, entityID, entityName string, score float64) (*domain.Alert, bool, error) {
	lock := u.lockEntity(string(entityType) + "-" + entityID)
	defer lock.Unlock()

	message := domain.AccountMessage(entityID, score)
	if entityType == domain.EntityDomain {
		message = domain.DomainMessage(entityID, score)
	}

	now := time.Now()
	candidate := &domain.Alert{
		Type:       domain.SeverityForScore(score),
		EntityType: entityType,
		EntityID:   entityID,
		EntityName: entityName,
		Score:      score,
		Threshold:  domain.AlertThreshold,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return u.alertRepo.RecordDegradation(candidate)
}

func (u *alertUsecase) MarkEmailedSince(since time.Time) error {
	_, err := u.alertRepo.MarkEmailedSince(since)
	return err
}

func (u *alertUsecase) ListAlerts(limit int) ([]*domain.Alert, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return u.alertRepo.List(limit)
}

func (u *alertUsecase) SetResolved(id string, resolved bool) (*domain.Alert, error) {
	alert, err := u.alertRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}

	var resolvedAt *time.Time
	if resolved {
		now := time.Now()
		resolvedAt = &now
	}
	if err := u.alertRepo.SetResolved(alert, resolvedAt); err != nil {
		return nil, err
	}
	return alert, nil
}

func (u *alertUsecase) PurgeDuplicates() (int64, int64, error) {
	return u.alertRepo.PurgeDuplicates()
}
