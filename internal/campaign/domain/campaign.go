package domain

import "time"

// Campaign mirrors one campaign row from the warmup tool. Identity is the
// upstream campaign id; counters are replaced wholesale on every sync.
type Campaign struct {
	ID                     string    `json:"id" gorm:"primaryKey"`
	CampaignID             string    `json:"campaignId" gorm:"uniqueIndex;not null"`
	Name                   string    `json:"name"`
	Status                 int       `json:"status"`
	IsEvergreen            bool      `json:"isEvergreen"`
	LeadsCount             int       `json:"leadsCount"`
	ContactedCount         int       `json:"contactedCount"`
	EmailsSentCount        int       `json:"emailsSentCount"`
	NewLeadsContactedCount int       `json:"newLeadsContactedCount"`
	OpenCount              int       `json:"openCount"`
	ReplyCount             int       `json:"replyCount"`
	ReplyCountUnique       int       `json:"replyCountUnique"`
	LinkClickCount         int       `json:"linkClickCount"`
	BouncedCount           int       `json:"bouncedCount"`
	UnsubscribedCount      int       `json:"unsubscribedCount"`
	CompletedCount         int       `json:"completedCount"`
	TotalOpportunities     int       `json:"totalOpportunities"`
	TotalOpportunityValue  float64   `json:"totalOpportunityValue"`
	LastSyncedAt           time.Time `json:"lastSyncedAt" gorm:"index"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}
