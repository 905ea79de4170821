package service

import (
	"context"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository"
)

type announcementService struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

func (s *announcementService) List(ctx context.Context) ([]domain.Announcement, error) {
	logger.EnterMethod("announcementService.List")

	list, err := s.repo.List(ctx)
	if err != nil {
		logger.ExitMethodWithError("announcementService.List", err)
		return nil, err
	}

	logger.ExitMethod("announcementService.List", "count", len(list))
	return list, nil
}
