package jobs

import (
	"context"
	"time"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/service"

	"github.com/shopspring/decimal"
)

// SendOutstandingDigest e-mails the back office a summary of every invoice
// still outstanding or failed.
func (jr *JobRunner) SendOutstandingDigest() {
	jr.runWithRecovery("SendOutstandingDigest", func() {
		ctx := context.Background()

		var unpaid []domain.Invoice
		for _, status := range []domain.InvoiceStatus{domain.InvoiceStatusOutstanding, domain.InvoiceStatusFailed} {
			invoices, err := jr.store.InvoiceRepository.ListByStatus(ctx, status)
			if err != nil {
				logger.Error("Failed to list invoices", "status", status, "error", err)
				return
			}
			unpaid = append(unpaid, invoices...)
		}

		digest := BuildOutstandingDigest(unpaid, jr.now())
		recipients := jr.config.Email.DigestRecipients
		if err := jr.services.Email.SendOutstandingDigest(ctx, recipients, digest); err != nil {
			logger.Error("Failed to send outstanding digest", "recipients", len(recipients), "error", err)
			return
		}

		logger.Info("Sent outstanding digest",
			"invoices", digest.InvoiceCount,
			"residents", digest.Residents,
			"total", digest.Total.StringFixed(2))
	})
}

// BuildOutstandingDigest totals unpaid invoices. Invoices whose rate is
// missing or not numeric are counted but add nothing to the total.
func BuildOutstandingDigest(invoices []domain.Invoice, now time.Time) service.OutstandingDigest {
	digest := service.OutstandingDigest{
		GeneratedAt:  now,
		InvoiceCount: len(invoices),
		Total:        decimal.Zero,
	}

	residents := make(map[string]struct{})
	for _, inv := range invoices {
		residents[inv.IDCardNumber] = struct{}{}
		if inv.Status == domain.InvoiceStatusFailed {
			digest.Failed++
		}
		if inv.GarbageRate.Valid {
			digest.Total = digest.Total.Add(inv.GarbageRate.Decimal)
		}
	}
	digest.Residents = len(residents)
	return digest
}
