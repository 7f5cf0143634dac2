package usecase

import (
	"warmup-monitor-backend/internal/campaign/domain"
	"warmup-monitor-backend/internal/campaign/repository"
)

// CampaignUsecase serves the dashboard's campaign reads.
type CampaignUsecase interface {
	ListCampaigns(sortBy, sortOrder string) ([]*domain.Campaign, error)
}

// campaignUsecase implements CampaignUsecase
type campaignUsecase struct {
	campaignRepo repository.CampaignRepository
}

func NewCampaignUsecase(campaignRepo repository.CampaignRepository) CampaignUsecase {
	return &campaignUsecase{campaignRepo: campaignRepo}
}

func (u *campaignUsecase) ListCampaigns(sortBy, sortOrder string) ([]*domain.Campaign, error) {
	return u.campaignRepo.List(sortBy, sortOrder)
}
