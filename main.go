package main

import (
	"log"

	api "warmup-monitor-backend/cmd/api"
	accountdomain "warmup-monitor-backend/internal/account/domain"
	accountRepo "warmup-monitor-backend/internal/account/repository"
	accountUsecase "warmup-monitor-backend/internal/account/usecase"
	alertdomain "warmup-monitor-backend/internal/alert/domain"
	alertRepo "warmup-monitor-backend/internal/alert/repository"
	alertUsecase "warmup-monitor-backend/internal/alert/usecase"
	campaigndomain "warmup-monitor-backend/internal/campaign/domain"
	campaignRepo "warmup-monitor-backend/internal/campaign/repository"
	campaignUsecase "warmup-monitor-backend/internal/campaign/usecase"
	"warmup-monitor-backend/internal/notification"
	syncdomain "warmup-monitor-backend/internal/sync/domain"
	syncRepo "warmup-monitor-backend/internal/sync/repository"
	syncUsecase "warmup-monitor-backend/internal/sync/usecase"
	"warmup-monitor-backend/pkg/config"
	"warmup-monitor-backend/pkg/database"
	"warmup-monitor-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&accountdomain.Domain{},
		&accountdomain.EmailAccount{},
		&campaigndomain.Campaign{},
		&alertdomain.Alert{},
		&syncdomain.SyncLog{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	accountRepository := accountRepo.NewGormAccountRepository(db)
	domainRepository := accountRepo.NewGormDomainRepository(db)
	campaignRepository := campaignRepo.NewGormCampaignRepository(db)
	alertRepository := alertRepo.NewGormAlertRepository(db)
	syncLogRepository := syncRepo.NewGormSyncLogRepository(db)

	// Initialize the alert digest notifier
	alertMailer := mailer.New(cfg)
	notifier := notification.NewService(alertMailer)
	if !alertMailer.Enabled() {
		log.Printf("[Main] SMTP not configured, alert digest emails disabled")
	}

	// Initialize use cases
	alertUc := alertUsecase.NewAlertUsecase(alertRepository)
	syncUc := syncUsecase.NewSyncUsecase(accountRepository, domainRepository, campaignRepository, alertUc, syncLogRepository, notifier)
	accountUc := accountUsecase.NewAccountUsecase(accountRepository, domainRepository, syncLogRepository)
	campaignUc := campaignUsecase.NewCampaignUsecase(campaignRepository)

	// Initialize HTTP handler
	handler := api.NewHandler(syncUc, accountUc, campaignUc, alertUc, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
