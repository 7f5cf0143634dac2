package usecase

import (
	"os"
	"testing"
	"time"

	"warmup-monitor-backend/internal/account/domain"
	"warmup-monitor-backend/internal/account/repository"
	syncdomain "warmup-monitor-backend/internal/sync/domain"
	syncrepo "warmup-monitor-backend/internal/sync/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStatsTestDB(t *testing.T) (*gorm.DB, func()) {
	tmpFile, err := os.CreateTemp("", "stats_test_*.db")
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

	if err := db.AutoMigrate(&domain.Domain{}, &domain.EmailAccount{}, &syncdomain.SyncLog{}); err != nil {
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

func seedAccount(t *testing.T, db *gorm.DB, email string, score float64) {
	t.Helper()
	account := &domain.EmailAccount{
		ID:           uuid.New().String(),
		Email:        email,
		WarmupScore:  score,
		Status:       1,
		LastSyncedAt: time.Now(),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}
}

func TestGetStats_BandCounts(t *testing.T) {
	db, cleanup := setupStatsTestDB(t)
	defer cleanup()

	uc := NewAccountUsecase(
		repository.NewGormAccountRepository(db),
		repository.NewGormDomainRepository(db),
		syncrepo.NewGormSyncLogRepository(db),
	)

	// Two healthy (boundary 97 included), one warning, two critical.
	seedAccount(t, db, "h1@corp.io", 100)
	seedAccount(t, db, "h2@corp.io", 97)
	seedAccount(t, db, "w1@corp.io", 96.9)
	seedAccount(t, db, "c1@corp.io", 89.9)
	seedAccount(t, db, "c2@corp.io", 0)

	stats, err := uc.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.Total != 5 {
		t.Errorf("got total %d, want 5", stats.Total)
	}
	if stats.Healthy != 2 {
		t.Errorf("got healthy %d, want 2", stats.Healthy)
	}
	if stats.Warning != 1 {
		t.Errorf("got warning %d, want 1", stats.Warning)
	}
	if stats.Critical != 2 {
		t.Errorf("got critical %d, want 2", stats.Critical)
	}
	if stats.LastSyncAt != nil {
		t.Error("last sync should be nil before any successful batch")
	}
}

func TestGetStats_LastSyncPicksNewestSuccess(t *testing.T) {
	db, cleanup := setupStatsTestDB(t)
	defer cleanup()

	syncLogs := syncrepo.NewGormSyncLogRepository(db)
	uc := NewAccountUsecase(
		repository.NewGormAccountRepository(db),
		repository.NewGormDomainRepository(db),
		syncLogs,
	)

	if err := syncLogs.Append(3, true, ""); err != nil {
		t.Fatalf("failed to seed sync log: %v", err)
	}
	before := time.Now()
	if err := syncLogs.Append(0, false, "boom"); err != nil {
		t.Fatalf("failed to seed sync log: %v", err)
	}

	stats, err := uc.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.LastSyncAt == nil {
		t.Fatal("last sync should be set")
	}
	// The failed entry is newer but must not win.
	if !stats.LastSyncAt.Before(before) {
		t.Error("last sync must come from the newest successful entry")
	}
}
