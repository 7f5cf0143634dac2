package domain

import "time"

// Score bands shared by accounts and domains. An entity is healthy at or above
// AlertThreshold; below CriticalThreshold it is critical, otherwise warning.
const (
	AlertThreshold    = 97.0
	CriticalThreshold = 90.0
)

// ScoreStatus classifies a warmup score into a dashboard band.
type ScoreStatus string

const (
	StatusHealthy  ScoreStatus = "healthy"
	StatusWarning  ScoreStatus = "warning"
	StatusCritical ScoreStatus = "critical"
)

func StatusForScore(score float64) ScoreStatus {
	if score >= AlertThreshold {
		return StatusHealthy
	}
	if score >= CriticalThreshold {
		return StatusWarning
	}
	return StatusCritical
}

// EmailAccount is one sending mailbox reported by the warmup tool. Identity is
// the email address as received; LastSyncedAt is the batch watermark used by
// full-sync pruning.
type EmailAccount struct {
	ID                   string      `json:"id" gorm:"primaryKey"`
	Email                string      `json:"email" gorm:"uniqueIndex;not null"`
	FirstName            string      `json:"firstName"`
	LastName             string      `json:"lastName"`
	TrackingDomainName   string      `json:"trackingDomainName"`
	TrackingDomainStatus string      `json:"trackingDomainStatus"`
	Status               int         `json:"status" gorm:"default:1"`
	WarmupScore          float64     `json:"warmupScore"`
	PreviousScore        *float64    `json:"previousScore"`
	TimestampCreated     *time.Time  `json:"timestampCreated"`
	TimestampUpdated     *time.Time  `json:"timestampUpdated"`
	LastSyncedAt         time.Time   `json:"lastSyncedAt" gorm:"index"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
	DomainID             *string     `json:"domainId" gorm:"index"`
	Domain               *Domain     `json:"domain,omitempty" gorm:"foreignKey:DomainID"`
}

// Domain groups accounts by their resolved sending domain. AverageScore and
// AccountCount are derived per batch, never supplied by upstream.
type Domain struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"uniqueIndex;not null"`
	AverageScore float64        `json:"averageScore"`
	AccountCount int            `json:"accountCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Accounts     []EmailAccount `json:"accounts,omitempty" gorm:"foreignKey:DomainID"`
}
