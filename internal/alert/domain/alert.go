package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Severity of an alert.
type Severity string

const (
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// EntityType names the kind of entity an alert refers to.
type EntityType string

const (
	EntityAccount EntityType = "ACCOUNT"
	EntityDomain  EntityType = "DOMAIN"
)

const (
	// AlertThreshold is the score below which an entity is considered degraded.
	AlertThreshold = 97.0
	// CriticalThreshold separates CRITICAL from WARNING.
	CriticalThreshold = 90.0
)

// Alert records a threshold crossing for an account or a domain. The entity
// reference is loose (type + id) so alerts survive entity deletion. At most
// one alert per (EntityType, EntityID) may have ResolvedAt == nil; the
// repository enforces that on write.
type Alert struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	Type       Severity   `json:"type" gorm:"size:20;not null"`
	EntityType EntityType `json:"entityType" gorm:"size:20;index:idx_alert_entity;not null"`
	EntityID   string     `json:"entityId" gorm:"index:idx_alert_entity;not null"`
	EntityName string     `json:"entityName"`
	Score      float64    `json:"score"`
	Threshold  float64    `json:"threshold"`
	Message    string     `json:"message"`
	EmailSent  bool       `json:"emailSent" gorm:"default:false"`
	ResolvedAt *time.Time `json:"resolvedAt"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func SeverityForScore(score float64) Severity {
	if score < CriticalThreshold {
		return SeverityCritical
	}
	return SeverityWarning
}

// AccountMessage renders the alert text for a degraded account.
func AccountMessage(email string, score float64) string {
	return fmt.Sprintf("Email account %s warmup score dropped to %s%%", email, strconv.FormatFloat(score, 'f', -1, 64))
}

// DomainMessage renders the alert text for a degraded domain average.
func DomainMessage(name string, averageScore float64) string {
	return fmt.Sprintf("Domain %s average warmup score dropped to %.1f%%", name, averageScore)
}
