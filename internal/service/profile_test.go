package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/storage"
	"garbage-billing-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }

	t.Run("UpdateSanitizesAndMerges", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewProfileService(userRepo, new(MockBlobStore), validation.New())

		userRepo.On("UpdateProfile", ctx, "u1", domain.ProfilePatch{PhoneNumber: str("0812345678")}).Return(nil)
		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", PhoneNumber: "0812345678"}, nil)

		user, err := svc.UpdateProfile(ctx, "u1", domain.ProfilePatch{PhoneNumber: str("081-234-5678")})
		require.NoError(t, err)
		assert.Equal(t, "0812345678", user.PhoneNumber)
		userRepo.AssertExpectations(t)
	})

	t.Run("InvalidPatchNotWritten", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewProfileService(userRepo, new(MockBlobStore), validation.New())

		_, err := svc.UpdateProfile(ctx, "u1", domain.ProfilePatch{IDCardNumber: str("12345")})
		assert.True(t, domain.IsValidation(err))
		userRepo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UploadProfileImage", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blobs := new(MockBlobStore)
		svc := NewProfileService(userRepo, blobs, validation.New())

		h := storage.Handle{Key: "profileImages/u1/profile_1.jpg", Token: "tok"}
		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		blobs.On("Upload", ctx, mock.MatchedBy(func(k string) bool { return strings.HasPrefix(k, "profileImages/u1/profile_") }), []byte("img"), "image/png").
			Return(h, nil)
		blobs.On("DownloadURL", ctx, h).Return("https://files/p.jpg", nil)
		userRepo.On("SetProfileImage", ctx, "u1", "https://files/p.jpg").Return(nil)

		url, err := svc.UploadProfileImage(ctx, "u1", domain.Attachment{Data: []byte("img"), ContentType: "image/png"})
		require.NoError(t, err)
		assert.Equal(t, "https://files/p.jpg", url)
		userRepo.AssertExpectations(t)
	})

	t.Run("UploadFailureLeavesUserUntouched", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		blobs := new(MockBlobStore)
		svc := NewProfileService(userRepo, blobs, validation.New())

		userRepo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1"}, nil)
		blobs.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.Handle{}, errors.New("offline"))

		_, err := svc.UploadProfileImage(ctx, "u1", domain.Attachment{Data: []byte("img")})
		assert.ErrorIs(t, err, domain.ErrUploadFailed)
		userRepo.AssertNotCalled(t, "SetProfileImage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAnnouncementService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnnouncementRepo)
	svc := NewAnnouncementService(repo)

	repo.On("List", ctx).Return([]domain.Announcement{{ID: "a1", Image: "https://img/1.jpg"}}, nil).Once()
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	repo.On("List", ctx).Return(nil, domain.ErrStoreUnavailable).Once()
	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
