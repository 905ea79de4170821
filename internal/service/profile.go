package service

import (
	"context"
	"fmt"
	"time"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository"
	"garbage-billing-backend/internal/storage"
	"garbage-billing-backend/internal/validation"
)

type profileService struct {
	userRepo  repository.UserRepository
	blobs     storage.BlobStore
	validator *validation.Validator
	now       func() time.Time
}

func NewProfileService(userRepo repository.UserRepository, blobs storage.BlobStore, v *validation.Validator) ProfileService {
	return &profileService{
		userRepo:  userRepo,
		blobs:     blobs,
		validator: v,
		now:       time.Now,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	logger.EnterMethod("profileService.GetProfile", "userID", userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("profileService.GetProfile", err, "userID", userID)
		return nil, err
	}

	logger.ExitMethod("profileService.GetProfile", "userID", userID)
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	logger.EnterMethod("profileService.UpdateProfile", "userID", userID)

	if err := s.validator.ProfilePatch(&patch); err != nil {
		logger.ExitMethodWithError("profileService.UpdateProfile", err, "userID", userID)
		return nil, err
	}
	if !patch.Empty() {
		if err := s.userRepo.UpdateProfile(ctx, userID, patch); err != nil {
			logger.ExitMethodWithError("profileService.UpdateProfile", err, "userID", userID)
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("profileService.UpdateProfile", err, "userID", userID)
		return nil, err
	}

	logger.ExitMethod("profileService.UpdateProfile", "userID", userID)
	return user, nil
}

// UploadProfileImage stores the image and then points the user's
// profileImage at it. Nothing is written to the user when the upload fails.
func (s *profileService) UploadProfileImage(ctx context.Context, userID string, img domain.Attachment) (string, error) {
	logger.EnterMethod("profileService.UploadProfileImage", "userID", userID, "bytes", len(img.Data))

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		logger.ExitMethodWithError("profileService.UploadProfileImage", err, "userID", userID)
		return "", err
	}

	key := storage.ObjectKey(storage.CategoryProfile, userID, "profile_", s.now())
	url, err := uploadAttachment(ctx, s.blobs, key, img)
	if err != nil {
		logger.ExitMethodWithError("profileService.UploadProfileImage", err, "userID", userID)
		return "", err
	}

	if err := s.userRepo.SetProfileImage(ctx, userID, url); err != nil {
		logger.ExitMethodWithError("profileService.UploadProfileImage", err, "userID", userID)
		return "", err
	}

	logger.ExitMethod("profileService.UploadProfileImage", "userID", userID, "key", key)
	return url, nil
}

// uploadAttachment uploads and resolves a download URL. Any failure is
// reported as domain.ErrUploadFailed.
func uploadAttachment(ctx context.Context, blobs storage.BlobStore, key string, a domain.Attachment) (string, error) {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	h, err := blobs.Upload(ctx, key, a.Data, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}
	url, err := blobs.DownloadURL(ctx, h)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}
	return url, nil
}
