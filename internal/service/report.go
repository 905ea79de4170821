package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository"
	"garbage-billing-backend/internal/storage"
	"garbage-billing-backend/internal/validation"
)

// reportService keeps a per-user history cache. A submitted report is
// appended immediately, marked unconfirmed, and stays so until a fetch from
// the store returns it. A user's history is only held while it contains
// unconfirmed entries.
type reportService struct {
	userRepo   repository.UserRepository
	reportRepo repository.ReportRepository
	blobs      storage.BlobStore
	validator  *validation.Validator
	now        func() time.Time

	mu    sync.Mutex
	cache map[string][]ReportEntry
}

func NewReportService(
	userRepo repository.UserRepository,
	reportRepo repository.ReportRepository,
	blobs storage.BlobStore,
	v *validation.Validator,
) ReportService {
	return &reportService{
		userRepo:   userRepo,
		reportRepo: reportRepo,
		blobs:      blobs,
		validator:  v,
		now:        time.Now,
		cache:      make(map[string][]ReportEntry),
	}
}

func (s *reportService) Submit(ctx context.Context, userID string, draft domain.ReportDraft, confirmed bool) ([]ReportEntry, error) {
	logger.EnterMethod("reportService.Submit", "userID", userID)

	if err := s.validator.ReportDraft(&draft); err != nil {
		logger.ExitMethodWithError("reportService.Submit", err, "userID", userID)
		return nil, err
	}
	if !confirmed {
		logger.ExitMethodWithError("reportService.Submit", domain.ErrNotConfirmed, "userID", userID)
		return nil, domain.ErrNotConfirmed
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("reportService.Submit", err, "userID", userID)
		return nil, err
	}

	// The new entry goes after the history the resident already has; load
	// it when nothing is held for this user.
	s.mu.Lock()
	_, held := s.cache[userID]
	s.mu.Unlock()
	var loaded []ReportEntry
	if !held {
		if loaded, err = s.fetch(ctx, userID); err != nil {
			logger.ExitMethodWithError("reportService.Submit", err, "userID", userID)
			return nil, err
		}
	}

	now := s.now()
	var fileURL *string
	if draft.Attachment != nil && len(draft.Attachment.Data) > 0 {
		key := storage.ObjectKey(storage.CategoryReport, "", "", now)
		url, err := uploadAttachment(ctx, s.blobs, key, *draft.Attachment)
		if err != nil {
			logger.ExitMethodWithError("reportService.Submit", err, "userID", userID)
			return nil, err
		}
		fileURL = &url
	}

	report := domain.Report{
		UserID:    userID,
		FirstName: user.FirstName,
		Title:     domain.ReportTitle(draft.Title),
		Location:  draft.Location,
		Details:   draft.Details,
		File:      fileURL,
		Status:    domain.ReportStatusPendingReview,
		CreatedAt: now,
	}
	if err := s.reportRepo.Create(ctx, &report); err != nil {
		logger.ExitMethodWithError("reportService.Submit", err, "userID", userID)
		return nil, err
	}

	s.mu.Lock()
	entries, held := s.cache[userID]
	if !held {
		entries = loaded
	}
	s.cache[userID] = append(entries, ReportEntry{Report: report, Unconfirmed: true})
	history := slices.Clone(s.cache[userID])
	s.mu.Unlock()

	logger.ExitMethod("reportService.Submit", "userID", userID, "reportID", report.ID)
	return history, nil
}

func (s *reportService) Cached(userID string) []ReportEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cache[userID])
}

// History fetches the user's reports and reconciles the cache: entries the
// store returned replace their local copies, local entries it did not return
// are kept at the end, still unconfirmed. Once nothing is unconfirmed the
// user's history is dropped from memory.
func (s *reportService) History(ctx context.Context, userID string) ([]ReportEntry, error) {
	logger.EnterMethod("reportService.History", "userID", userID)

	entries, err := s.fetch(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("reportService.History", err, "userID", userID)
		return nil, err
	}
	fetched := make(map[string]bool, len(entries))
	for _, e := range entries {
		fetched[e.ID] = true
	}

	s.mu.Lock()
	pending := 0
	for _, e := range s.cache[userID] {
		if e.Unconfirmed && !fetched[e.ID] {
			entries = append(entries, e)
			pending++
		}
	}
	if pending > 0 {
		s.cache[userID] = entries
	} else {
		delete(s.cache, userID)
	}
	history := slices.Clone(entries)
	s.mu.Unlock()

	logger.ExitMethod("reportService.History", "userID", userID, "count", len(history), "unconfirmed", pending)
	return history, nil
}

// fetch returns the stored reports oldest first, all confirmed.
func (s *reportService) fetch(ctx context.Context, userID string) ([]ReportEntry, error) {
	reports, err := s.reportRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(reports, func(a, b domain.Report) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	entries := make([]ReportEntry, 0, len(reports))
	for _, r := range reports {
		entries = append(entries, ReportEntry{Report: r})
	}
	return entries, nil
}

// ReconcileAll re-fetches every user whose cache still has unconfirmed
// entries and returns how many users were refreshed.
func (s *reportService) ReconcileAll(ctx context.Context) (int, error) {
	logger.EnterMethod("reportService.ReconcileAll")

	s.mu.Lock()
	var users []string
	for userID, entries := range s.cache {
		if slices.ContainsFunc(entries, func(e ReportEntry) bool { return e.Unconfirmed }) {
			users = append(users, userID)
		}
	}
	s.mu.Unlock()
	slices.Sort(users)

	var errs []error
	refreshed := 0
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.History(ctx, userID); err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}

	err := errors.Join(errs...)
	if err != nil {
		logger.ExitMethodWithError("reportService.ReconcileAll", err, "refreshed", refreshed, "candidates", len(users))
		return refreshed, err
	}
	logger.ExitMethod("reportService.ReconcileAll", "refreshed", refreshed)
	return refreshed, nil
}
