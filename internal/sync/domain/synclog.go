package domain

import "time"

// SyncLog is one append-only audit row per webhook batch. The dashboard's
// "last synced" indicator reads the newest successful entry.
type SyncLog struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	AccountsCount int       `json:"accountsCount"`
	Success       bool      `json:"success"`
	ErrorMessage  string    `json:"errorMessage,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
}
