package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// The automation tool delivers batches in several shapes: a single envelope
// object, an array of envelopes, or pre-flattened record lists, with records
// optionally nested under "items" or "campaigns". The extractors walk any of
// those and return flat, order-preserving record slices. A shape that matches
// nothing yields an empty slice, which callers treat as "nothing to do", not
// as an error.

// AccountRecord is one normalized account entry from a webhook payload.
type AccountRecord struct {
	Email                string
	FirstName            string
	LastName             string
	TrackingDomainName   string
	TrackingDomainStatus string
	Status               int
	WarmupScore          float64
	TimestampCreated     *time.Time
	TimestampUpdated     *time.Time
}

// CampaignRecord is one normalized campaign entry from a webhook payload.
type CampaignRecord struct {
	CampaignID             string
	Name                   string
	Status                 int
	IsEvergreen            bool
	LeadsCount             int
	ContactedCount         int
	EmailsSentCount        int
	NewLeadsContactedCount int
	OpenCount              int
	ReplyCount             int
	ReplyCountUnique       int
	LinkClickCount         int
	BouncedCount           int
	UnsubscribedCount      int
	CompletedCount         int
	TotalOpportunities     int
	TotalOpportunityValue  float64
	TimestampCreated       *time.Time
}

// ExtractAccountRecords finds every account-like record (non-empty "email"
// field) anywhere in a decoded JSON value.
func ExtractAccountRecords(payload any) []AccountRecord {
	var records []AccountRecord
	for _, raw := range findRecords(payload, "email", []string{"items"}) {
		records = append(records, accountRecordFrom(raw))
	}
	return records
}

// ExtractCampaignRecords finds every campaign-like record (non-empty
// "campaign_id" field) anywhere in a decoded JSON value.
func ExtractCampaignRecords(payload any) []CampaignRecord {
	var records []CampaignRecord
	for _, raw := range findRecords(payload, "campaign_id", []string{"campaigns", "items"}) {
		records = append(records, campaignRecordFrom(raw))
	}
	return records
}

// findRecords classifies the value as a sequence, a direct-match record, a
// wrapper with a nested collection, or an unrecognized shape, recursing on the
// first three.
func findRecords(value any, matchKey string, nestedKeys []string) []map[string]any {
	switch v := value.(type) {
	case []any:
		var out []map[string]any
		for _, item := range v {
			out = append(out, findRecords(item, matchKey, nestedKeys)...)
		}
		return out
	case map[string]any:
		if stringifyValue(v[matchKey]) != "" {
			return []map[string]any{v}
		}
		for _, key := range nestedKeys {
			if nested, ok := v[key].([]any); ok {
				return findRecords(nested, matchKey, nestedKeys)
			}
		}
		return nil
	default:
		return nil
	}
}

func accountRecordFrom(m map[string]any) AccountRecord {
	return AccountRecord{
		Email:                stringField(m, "email"),
		FirstName:            stringField(m, "first_name"),
		LastName:             stringField(m, "last_name"),
		TrackingDomainName:   stringField(m, "tracking_domain_name"),
		TrackingDomainStatus: stringField(m, "tracking_domain_status"),
		Status:               intField(m, "status", 1),
		WarmupScore:          floatField(m, "stat_warmup_score", 100),
		TimestampCreated:     timeField(m, "timestamp_created"),
		TimestampUpdated:     timeField(m, "timestamp_updated"),
	}
}

func campaignRecordFrom(m map[string]any) CampaignRecord {
	return CampaignRecord{
		CampaignID:             stringifyValue(m["campaign_id"]),
		Name:                   stringField(m, "campaign_name"),
		Status:                 intField(m, "campaign_status", 0),
		IsEvergreen:            boolField(m, "campaign_is_evergreen"),
		LeadsCount:             intField(m, "leads_count", 0),
		ContactedCount:         intField(m, "contacted_count", 0),
		EmailsSentCount:        intField(m, "emails_sent_count", 0),
		NewLeadsContactedCount: intField(m, "new_leads_contacted_count", 0),
		OpenCount:              intField(m, "open_count", 0),
		ReplyCount:             intField(m, "reply_count", 0),
		ReplyCountUnique:       intField(m, "reply_count_unique", 0),
		LinkClickCount:         intField(m, "link_click_count", 0),
		BouncedCount:           intField(m, "bounced_count", 0),
		UnsubscribedCount:      intField(m, "unsubscribed_count", 0),
		CompletedCount:         intField(m, "completed_count", 0),
		TotalOpportunities:     intField(m, "total_opportunities", 0),
		TotalOpportunityValue:  floatField(m, "total_opportunity_value", 0),
		TimestampCreated:       timeField(m, "timestamp_created"),
	}
}

// Field coercions. Upstream counters are occasionally strings or garbage; a
// malformed value becomes zero rather than failing the record.

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// stringifyValue renders string or numeric identifiers as strings.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

func floatField(m map[string]any, key string, defaultValue float64) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return defaultValue
	}
	switch val := v.(type) {
	case float64:
		return val
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

func intField(m map[string]any, key string, defaultValue int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return defaultValue
	}
	return int(floatField(m, key, float64(defaultValue)))
}

func boolField(m map[string]any, key string) bool {
	switch val := m[key].(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	case float64:
		return val != 0
	default:
		return false
	}
}

func timeField(m map[string]any, key string) *time.Time {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
