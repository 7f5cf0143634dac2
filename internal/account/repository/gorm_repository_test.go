package repository

import (
	"os"
	"testing"
	"time"

	"warmup-monitor-backend/internal/account/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAccountTestDB(t *testing.T) (*gorm.DB, func()) {
	tmpFile, err := os.CreateTemp("", "account_test_*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpFile.Close()

	db, err := gorm.Open(sqlite.Open(tmpFile.Name()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Domain{}, &domain.EmailAccount{}); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("Failed to migrate: %v", err)
	}

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile.Name())
	}

	return db, cleanup
}

func syncedAccount(email string, score float64, syncedAt time.Time, domainID *string) *domain.EmailAccount {
	return &domain.EmailAccount{
		Email:        email,
		WarmupScore:  score,
		Status:       1,
		LastSyncedAt: syncedAt,
		DomainID:     domainID,
	}
}

func TestUpsertFromSync_PreviousScoreCapture(t *testing.T) {
	db, cleanup := setupAccountTestDB(t)
	defer cleanup()
	repo := NewGormAccountRepository(db)

	created, prev, err := repo.UpsertFromSync(syncedAccount("a@x.io", 95, time.Now(), nil))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if prev != nil {
		t.Error("new account has no prior score")
	}
	if created.PreviousScore != nil {
		t.Error("new account must store a nil previousScore")
	}

	updated, prev, err := repo.UpsertFromSync(syncedAccount("a@x.io", 92, time.Now(), nil))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if prev == nil || *prev != 95 {
		t.Fatalf("got prior score %v, want 95", prev)
	}
	if updated.PreviousScore == nil || *updated.PreviousScore != 95 {
		t.Errorf("got previousScore %v, want 95", updated.PreviousScore)
	}
	if updated.ID != created.ID {
		t.Error("upsert must keep the row identity")
	}

	var count int64
	db.Model(&domain.EmailAccount{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one row, got %d", count)
	}
}

func TestDeleteSyncedBefore(t *testing.T) {
	db, cleanup := setupAccountTestDB(t)
	defer cleanup()
	repo := NewGormAccountRepository(db)

	watermark := time.Now()
	stale := watermark.Add(-time.Hour)

	if _, _, err := repo.UpsertFromSync(syncedAccount("stale@x.io", 99, stale, nil)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, _, err := repo.UpsertFromSync(syncedAccount("fresh@x.io", 99, watermark, nil)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	deleted, err := repo.DeleteSyncedBefore(watermark)
	if err != nil {
		t.Fatalf("DeleteSyncedBefore failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("got %d deleted, want 1", deleted)
	}

	remaining, err := repo.FindByEmail("fresh@x.io")
	if err != nil || remaining == nil {
		t.Fatalf("account touched at the watermark must survive: %v", err)
	}
	gone, err := repo.FindByEmail("stale@x.io")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if gone != nil {
		t.Error("stale account should be pruned")
	}
}

func TestDomainGetOrCreateAndDeleteEmpty(t *testing.T) {
	db, cleanup := setupAccountTestDB(t)
	defer cleanup()
	accountRepo := NewGormAccountRepository(db)
	domainRepo := NewGormDomainRepository(db)

	populated, err := domainRepo.GetOrCreate("corp.io")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	again, err := domainRepo.GetOrCreate("corp.io")
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if again.ID != populated.ID {
		t.Error("GetOrCreate must reuse the existing domain")
	}

	if _, err := domainRepo.GetOrCreate("empty.io"); err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if _, _, err := accountRepo.UpsertFromSync(syncedAccount("a@corp.io", 99, time.Now(), &populated.ID)); err != nil {
		t.Fatalf("seed account failed: %v", err)
	}

	deleted, err := domainRepo.DeleteEmpty()
	if err != nil {
		t.Fatalf("DeleteEmpty failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("got %d deleted, want 1", deleted)
	}

	domains, err := domainRepo.List("name", "asc")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(domains) != 1 || domains[0].Name != "corp.io" {
		t.Fatalf("got %+v, want only corp.io", domains)
	}
}

func TestListFilterAndSearch(t *testing.T) {
	db, cleanup := setupAccountTestDB(t)
	defer cleanup()
	repo := NewGormAccountRepository(db)

	seed := []*domain.EmailAccount{
		{Email: "healthy@x.io", FirstName: "Ada", WarmupScore: 99, LastSyncedAt: time.Now()},
		{Email: "warning@x.io", FirstName: "Grace", WarmupScore: 93, LastSyncedAt: time.Now()},
		{Email: "critical@x.io", FirstName: "Linus", WarmupScore: 80, LastSyncedAt: time.Now()},
	}
	for _, acc := range seed {
		if _, _, err := repo.UpsertFromSync(acc); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	warning, err := repo.List(ListOptions{Filter: "warning"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(warning) != 1 || warning[0].Email != "warning@x.io" {
		t.Fatalf("warning filter returned %+v", warning)
	}

	found, err := repo.List(ListOptions{Search: "GRACE"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(found) != 1 || found[0].FirstName != "Grace" {
		t.Fatalf("case-insensitive search returned %+v", found)
	}

	sorted, err := repo.List(ListOptions{SortBy: "warmupScore", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sorted) != 3 || sorted[0].Email != "healthy@x.io" || sorted[2].Email != "critical@x.io" {
		t.Fatalf("descending sort returned wrong order: %+v", sorted)
	}

	// Unknown sort columns fall back instead of reaching the SQL string.
	if _, err := repo.List(ListOptions{SortBy: "email; DROP TABLE email_accounts"}); err != nil {
		t.Fatalf("unknown sort column should fall back, got %v", err)
	}
}
