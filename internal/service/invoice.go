package service

import (
	"context"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository"
)

type invoiceService struct {
	userRepo    repository.UserRepository
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceService(userRepo repository.UserRepository, invoiceRepo repository.InvoiceRepository) InvoiceService {
	return &invoiceService{
		userRepo:    userRepo,
		invoiceRepo: invoiceRepo,
	}
}

// FindInvoicesByIdentity returns every invoice of the identity, oldest first.
// No results is not an error.
func (s *invoiceService) FindInvoicesByIdentity(ctx context.Context, idCardNumber string) ([]domain.Invoice, error) {
	logger.EnterMethod("invoiceService.FindInvoicesByIdentity")

	invoices, err := s.invoiceRepo.ListByIDCardNumber(ctx, idCardNumber)
	if err != nil {
		logger.ExitMethodWithError("invoiceService.FindInvoicesByIdentity", err)
		return nil, err
	}
	domain.SortInvoicesByPeriod(invoices)

	logger.ExitMethod("invoiceService.FindInvoicesByIdentity", "count", len(invoices))
	return invoices, nil
}

// PayableInvoices lists the invoices a payment may be submitted against.
func (s *invoiceService) PayableInvoices(ctx context.Context, idCardNumber string) ([]domain.Invoice, error) {
	invoices, err := s.FindInvoicesByIdentity(ctx, idCardNumber)
	if err != nil {
		return nil, err
	}
	return domain.FilterInvoices(invoices, domain.InvoiceStatusOutstanding, domain.InvoiceStatusFailed), nil
}

func (s *invoiceService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	logger.EnterMethod("invoiceService.Dashboard", "userID", userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.ExitMethodWithError("invoiceService.Dashboard", err, "userID", userID)
		return nil, err
	}

	invoices, err := s.FindInvoicesByIdentity(ctx, user.IDCardNumber)
	if err != nil {
		logger.ExitMethodWithError("invoiceService.Dashboard", err, "userID", userID)
		return nil, err
	}

	d := &Dashboard{
		Invoices:         invoices,
		Outstanding:      domain.FilterInvoices(invoices, domain.InvoiceStatusOutstanding),
		OutstandingTotal: domain.OutstandingTotal(invoices),
		PaymentHistory:   domain.PaymentHistory(invoices),
	}

	logger.ExitMethod("invoiceService.Dashboard", "userID", userID, "invoices", len(invoices), "outstanding_total", d.OutstandingTotal.StringFixed(2))
	return d, nil
}
