package usecase

import (
	"fmt"
	"log"
	"time"

	accountdomain "warmup-monitor-backend/internal/account/domain"
	accountrepo "warmup-monitor-backend/internal/account/repository"
	alertdomain "warmup-monitor-backend/internal/alert/domain"
	alertUsecase "warmup-monitor-backend/internal/alert/usecase"
	campaigndomain "warmup-monitor-backend/internal/campaign/domain"
	campaignrepo "warmup-monitor-backend/internal/campaign/repository"
	"warmup-monitor-backend/internal/notification"
	syncdomain "warmup-monitor-backend/internal/sync/domain"
	syncrepo "warmup-monitor-backend/internal/sync/repository"
)

// emailedWindow is how far back a successful digest send marks alerts as
// emailed, mirroring the "written within the last minute" contract.
const emailedWindow = time.Minute

// SyncResult summarizes one processed batch.
type SyncResult struct {
	NoOp               bool
	AccountsProcessed  int
	CampaignsProcessed int
	AccountAlerts      int
	DomainAlerts       int
}

// Notifier is the digest side channel. Send reports whether the digest was
// actually delivered.
type Notifier interface {
	Send(digest notification.Digest) bool
}

// SyncUsecase runs the webhook ingestion pipeline.
type SyncUsecase interface {
	// ProcessPayload runs one batch end to end: normalize, reconcile
	// accounts and campaigns, aggregate domains, evaluate alerts, notify,
	// prune by watermark, and record the outcome in the sync log.
	ProcessPayload(payload any) (*SyncResult, error)

	// LastSuccessfulSyncAt exposes the dashboard's "last synced" timestamp.
	LastSuccessfulSyncAt() (*time.Time, error)
}

// syncUsecase implements SyncUsecase
type syncUsecase struct {
	accountRepo  accountrepo.AccountRepository
	domainRepo   accountrepo.DomainRepository
	campaignRepo campaignrepo.CampaignRepository
	alertUC      alertUsecase.AlertUsecase
	syncLogRepo  syncrepo.SyncLogRepository
	notifier     Notifier
}

func NewSyncUsecase(
	accountRepo accountrepo.AccountRepository,
	domainRepo accountrepo.DomainRepository,
	campaignRepo campaignrepo.CampaignRepository,
	alertUC alertUsecase.AlertUsecase,
	syncLogRepo syncrepo.SyncLogRepository,
	notifier Notifier,
) SyncUsecase {
	return &syncUsecase{
		accountRepo:  accountRepo,
		domainRepo:   domainRepo,
		campaignRepo: campaignRepo,
		alertUC:      alertUC,
		syncLogRepo:  syncLogRepo,
		notifier:     notifier,
	}
}

func (u *syncUsecase) ProcessPayload(payload any) (*SyncResult, error) {
	records := syncdomain.ExtractAccountRecords(payload)
	campaigns := syncdomain.ExtractCampaignRecords(payload)

	if len(records) == 0 && len(campaigns) == 0 {
		return &SyncResult{NoOp: true}, nil
	}

	// One watermark for the whole batch. Every touched row gets stamped with
	// it, and pruning deletes everything older.
	batchStart := time.Now()

	result, err := u.runBatch(batchStart, records, campaigns)
	if err != nil {
		log.Printf("[Sync] Batch failed: %v", err)
		if logErr := u.syncLogRepo.Append(0, false, err.Error()); logErr != nil {
			log.Printf("[Sync] Failed to record failed batch: %v", logErr)
		}
		return nil, err
	}

	if err := u.syncLogRepo.Append(result.AccountsProcessed, true, ""); err != nil {
		log.Printf("[Sync] Failed to record successful batch: %v", err)
	}

	log.Printf("[Sync] Batch complete: %d accounts, %d campaigns, %d account alerts, %d domain alerts",
		result.AccountsProcessed, result.CampaignsProcessed, result.AccountAlerts, result.DomainAlerts)
	return result, nil
}

func (u *syncUsecase) runBatch(batchStart time.Time, records []syncdomain.AccountRecord, campaigns []syncdomain.CampaignRecord) (*SyncResult, error) {
	result := &SyncResult{}
	digest := notification.Digest{Timestamp: batchStart}
	domainScores := make(map[string][]float64)
	var domainOrder []string

	for _, record := range records {
		if record.Email == "" {
			continue
		}

		prev, err := u.reconcileAccount(batchStart, record)
		if err != nil {
			log.Printf("[Sync] Skipping account %s: %v", record.Email, err)
			continue
		}
		result.AccountsProcessed++

		domainName := syncdomain.ResolveDomain(record.TrackingDomainName, record.Email)
		if _, seen := domainScores[domainName]; !seen {
			domainOrder = append(domainOrder, domainName)
		}
		domainScores[domainName] = append(domainScores[domainName], record.WarmupScore)

		if record.WarmupScore < alertdomain.AlertThreshold {
			_, written, err := u.alertUC.RecordDegradation(alertdomain.EntityAccount, record.Email, record.Email, record.WarmupScore)
			if err != nil {
				log.Printf("[Sync] Alert evaluation failed for account %s: %v", record.Email, err)
				continue
			}
			if written {
				result.AccountAlerts++
				digest.AccountAlerts = append(digest.AccountAlerts, notification.AccountAlert{
					Email:         record.Email,
					Score:         record.WarmupScore,
					PreviousScore: prev,
				})
			}
		}
	}

	// Aggregate pass: each domain's stats are fully recomputed from the
	// scores this batch attributed to it.
	for _, name := range domainOrder {
		scores := domainScores[name]
		var sum float64
		for _, s := range scores {
			sum += s
		}
		average := sum / float64(len(scores))

		if err := u.domainRepo.UpdateStats(name, average, len(scores)); err != nil {
			log.Printf("[Sync] Failed to update stats for domain %s: %v", name, err)
			continue
		}

		if average < alertdomain.AlertThreshold {
			_, written, err := u.alertUC.RecordDegradation(alertdomain.EntityDomain, name, name, average)
			if err != nil {
				log.Printf("[Sync] Alert evaluation failed for domain %s: %v", name, err)
				continue
			}
			if written {
				result.DomainAlerts++
				digest.DomainAlerts = append(digest.DomainAlerts, notification.DomainAlert{
					Domain:       name,
					AverageScore: average,
					AccountCount: len(scores),
				})
			}
		}
	}

	if !digest.Empty() && u.notifier != nil {
		if u.notifier.Send(digest) {
			if err := u.alertUC.MarkEmailedSince(time.Now().Add(-emailedWindow)); err != nil {
				log.Printf("[Sync] Failed to mark alerts as emailed: %v", err)
			}
		}
	}

	for _, record := range campaigns {
		if err := u.reconcileCampaign(batchStart, record); err != nil {
			log.Printf("[Sync] Skipping campaign %s: %v", record.CampaignID, err)
			continue
		}
		result.CampaignsProcessed++
	}

	if err := u.prune(batchStart, result); err != nil {
		return nil, err
	}

	return result, nil
}

// reconcileAccount upserts one account and returns the score stored before
// this batch (nil for a new account).
func (u *syncUsecase) reconcileAccount(batchStart time.Time, record syncdomain.AccountRecord) (*float64, error) {
	domainName := syncdomain.ResolveDomain(record.TrackingDomainName, record.Email)
	dom, err := u.domainRepo.GetOrCreate(domainName)
	if err != nil {
		return nil, fmt.Errorf("resolve domain %q: %w", domainName, err)
	}

	account := &accountdomain.EmailAccount{
		Email:                record.Email,
		FirstName:            record.FirstName,
		LastName:             record.LastName,
		TrackingDomainName:   record.TrackingDomainName,
		TrackingDomainStatus: record.TrackingDomainStatus,
		Status:               record.Status,
		WarmupScore:          record.WarmupScore,
		TimestampCreated:     record.TimestampCreated,
		TimestampUpdated:     record.TimestampUpdated,
		LastSyncedAt:         batchStart,
		DomainID:             &dom.ID,
	}

	_, prev, err := u.accountRepo.UpsertFromSync(account)
	if err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}
	return prev, nil
}

func (u *syncUsecase) reconcileCampaign(batchStart time.Time, record syncdomain.CampaignRecord) error {
	campaign := &campaigndomain.Campaign{
		CampaignID:             record.CampaignID,
		Name:                   record.Name,
		Status:                 record.Status,
		IsEvergreen:            record.IsEvergreen,
		LeadsCount:             record.LeadsCount,
		ContactedCount:         record.ContactedCount,
		EmailsSentCount:        record.EmailsSentCount,
		NewLeadsContactedCount: record.NewLeadsContactedCount,
		OpenCount:              record.OpenCount,
		ReplyCount:             record.ReplyCount,
		ReplyCountUnique:       record.ReplyCountUnique,
		LinkClickCount:         record.LinkClickCount,
		BouncedCount:           record.BouncedCount,
		UnsubscribedCount:      record.UnsubscribedCount,
		CompletedCount:         record.CompletedCount,
		TotalOpportunities:     record.TotalOpportunities,
		TotalOpportunityValue:  record.TotalOpportunityValue,
		LastSyncedAt:           batchStart,
	}
	if record.TimestampCreated != nil {
		campaign.CreatedAt = *record.TimestampCreated
	}
	return u.campaignRepo.UpsertFromSync(campaign)
}

// prune enacts full-snapshot semantics: rows not touched by this batch's
// watermark are stale and go away. Accounts are only pruned when the batch
// actually carried account records (a campaigns-only delivery must not wipe
// the account population), and vice versa.
func (u *syncUsecase) prune(batchStart time.Time, result *SyncResult) error {
	if result.AccountsProcessed > 0 {
		deleted, err := u.accountRepo.DeleteSyncedBefore(batchStart)
		if err != nil {
			return fmt.Errorf("prune accounts: %w", err)
		}
		emptied, err := u.domainRepo.DeleteEmpty()
		if err != nil {
			return fmt.Errorf("prune domains: %w", err)
		}
		if deleted > 0 || emptied > 0 {
			log.Printf("[Sync] Pruned %d stale accounts, %d empty domains", deleted, emptied)
		}
	}

	if result.CampaignsProcessed > 0 {
		deleted, err := u.campaignRepo.DeleteSyncedBefore(batchStart)
		if err != nil {
			return fmt.Errorf("prune campaigns: %w", err)
		}
		if deleted > 0 {
			log.Printf("[Sync] Pruned %d stale campaigns", deleted)
		}
	}

	return nil
}

func (u *syncUsecase) LastSuccessfulSyncAt() (*time.Time, error) {
	return u.syncLogRepo.LastSuccessfulAt()
}
