package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository"
	"garbage-billing-backend/internal/storage"
	"garbage-billing-backend/internal/validation"
)

type paymentService struct {
	userRepo    repository.UserRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	invoices    InvoiceService
	blobs       storage.BlobStore
	now         func() time.Time
}

func NewPaymentService(
	userRepo repository.UserRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	invoices InvoiceService,
	blobs storage.BlobStore,
) PaymentService {
	return &paymentService{
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		invoices:    invoices,
		blobs:       blobs,
		now:         time.Now,
	}
}

// Submit records a transfer claim against one payable invoice. The evidence
// image, if any, is uploaded before anything is written; a failed upload
// aborts the submission with no payment created. Duplicate submissions are
// not detected.
func (s *paymentService) Submit(ctx context.Context, userID string, sub PaymentSubmission) (*PaymentResult, error) {
	logger.EnterMethod("paymentService.Submit", "userID", userID, "invoiceID", sub.InvoiceID)

	if !sub.Confirmed {
		logger.ExitMethodWithError("paymentService.Submit", domain.ErrNotConfirmed, "userID", userID)
		return nil, domain.ErrNotConfirmed
	}
	if err := validateTransfer(sub); err != nil {
		logger.ExitMethodWithError("paymentService.Submit", err, "userID", userID)
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.Submit", err, "userID", userID)
		return nil, err
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, sub.InvoiceID)
	if errors.Is(err, domain.ErrNotFound) {
		err = domain.ErrInvoiceNotPayable
	}
	if err != nil {
		logger.ExitMethodWithError("paymentService.Submit", err, "userID", userID, "invoiceID", sub.InvoiceID)
		return nil, err
	}
	if !invoice.Status.Payable() || !ownsInvoice(user, invoice) {
		logger.ExitMethodWithError("paymentService.Submit", domain.ErrInvoiceNotPayable,
			"userID", userID, "invoiceID", sub.InvoiceID, "status", string(invoice.Status))
		return nil, domain.ErrInvoiceNotPayable
	}

	now := s.now()
	var fileURL *string
	if sub.Evidence != nil && len(sub.Evidence.Data) > 0 {
		key := storage.ObjectKey(storage.CategoryPaymentEvidence, "", "", now)
		url, err := uploadAttachment(ctx, s.blobs, key, *sub.Evidence)
		if err != nil {
			logger.ExitMethodWithError("paymentService.Submit", err, "userID", userID, "invoiceID", sub.InvoiceID)
			return nil, err
		}
		fileURL = &url
	}

	transferTime := sub.TransferTime
	if transferTime.IsZero() {
		transferTime = sub.TransferDate
	}
	payment := domain.NewPayment(
		domain.Payer{
			UserID:       user.ID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			IDCardNumber: user.IDCardNumber,
		},
		domain.SnapshotInvoice(*invoice),
		domain.Transfer{Date: sub.TransferDate, Time: transferTime, Note: sub.AdditionalNote},
		fileURL,
		now,
	)
	if err := s.paymentRepo.Create(ctx, &payment); err != nil {
		logger.ExitMethodWithError("paymentService.Submit", err, "userID", userID, "invoiceID", sub.InvoiceID)
		return nil, err
	}

	result := &PaymentResult{Payment: payment}

	// The payment is already stored; a failed refresh only leaves the lists empty.
	if payable, err := s.invoices.PayableInvoices(ctx, user.IDCardNumber); err != nil {
		logger.Warn("Failed to refresh payable invoices after payment", "userID", userID, "error", err)
	} else {
		result.Payable = payable
	}
	if history, err := s.History(ctx, userID); err != nil {
		logger.Warn("Failed to refresh payment history after payment", "userID", userID, "error", err)
	} else {
		result.History = history
	}

	logger.ExitMethod("paymentService.Submit", "userID", userID, "paymentID", payment.ID)
	return result, nil
}

// History lists the user's payments, newest transfer first.
func (s *paymentService) History(ctx context.Context, userID string) ([]domain.Payment, error) {
	logger.EnterMethod("paymentService.History", "userID", userID)

	payments, err := s.paymentRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.History", err, "userID", userID)
		return nil, err
	}
	slices.SortStableFunc(payments, func(a, b domain.Payment) int {
		return b.TransferDate.Compare(a.TransferDate)
	})

	logger.ExitMethod("paymentService.History", "userID", userID, "count", len(payments))
	return payments, nil
}

func validateTransfer(sub PaymentSubmission) error {
	verr := &domain.ValidationError{}
	if sub.InvoiceID == "" {
		verr.Add("invoiceId", validation.MsgInvoice)
	}
	if sub.TransferDate.IsZero() {
		verr.Add("transferDate", validation.MsgTransferDate)
	}
	return verr.OrNil()
}

func ownsInvoice(user *domain.User, inv *domain.Invoice) bool {
	if inv.IDCardNumber != "" && inv.IDCardNumber == user.IDCardNumber {
		return true
	}
	return inv.UserID != "" && inv.UserID == user.ID
}
