package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPendingReview PaymentStatus = "รอตรวจสอบ"
	PaymentStatusConfirmed     PaymentStatus = "ชำระแล้ว"
	PaymentStatusRejected      PaymentStatus = "ชำระไม่สำเร็จ"

	PaymentStatusUnknown PaymentStatus = ""
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(strings.TrimSpace(s)); st {
	case PaymentStatusPendingReview, PaymentStatusConfirmed, PaymentStatusRejected:
		return st, nil
	default:
		return PaymentStatusUnknown, fmt.Errorf("unknown payment status %q", s)
	}
}

// InvoiceSnapshot is a value copy of the invoice fields frozen into a payment.
type InvoiceSnapshot struct {
	InvoiceID     string
	InvoiceNumber string
	GarbageRate   decimal.NullDecimal
	Month         string
	Year          string
}

// SnapshotInvoice copies the fields a payment denormalizes. Later edits to
// the invoice never reach payments built from the snapshot.
func SnapshotInvoice(inv Invoice) InvoiceSnapshot {
	return InvoiceSnapshot{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		GarbageRate:   inv.GarbageRate,
		Month:         inv.Month,
		Year:          inv.Year,
	}
}

// Payer identifies the resident submitting a transfer claim.
type Payer struct {
	UserID       string
	FirstName    string
	LastName     string
	IDCardNumber string
}

// Transfer is what the resident reports about the bank transfer.
type Transfer struct {
	Date time.Time
	Time time.Time
	Note string
}

// Payment is a submitted transfer claim against one invoice.
type Payment struct {
	ID             string              `json:"id"`
	UserID         string              `json:"userId"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	IDCardNumber   string              `json:"idCardNumber"`
	TransferDate   time.Time           `json:"transferDate"`
	TransferTime   time.Time           `json:"transferTime"`
	AdditionalNote string              `json:"additionalNote"`
	File           *string             `json:"file"`
	InvoiceID      string              `json:"invoiceId"`
	InvoiceNumber  string              `json:"invoiceNumber,omitempty"`
	GarbageRate    decimal.NullDecimal `json:"garbagerate"`
	Month          string              `json:"month"`
	Year           string              `json:"year"`
	Status         PaymentStatus       `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// NewPayment builds a pending-review payment from a payer, an invoice
// snapshot and the transfer details.
func NewPayment(payer Payer, snap InvoiceSnapshot, transfer Transfer, fileURL *string, now time.Time) Payment {
	var file *string
	if fileURL != nil {
		u := *fileURL
		file = &u
	}
	return Payment{
		UserID:         payer.UserID,
		FirstName:      payer.FirstName,
		LastName:       payer.LastName,
		IDCardNumber:   payer.IDCardNumber,
		TransferDate:   transfer.Date,
		TransferTime:   transfer.Time,
		AdditionalNote: transfer.Note,
		File:           file,
		InvoiceID:      snap.InvoiceID,
		InvoiceNumber:  snap.InvoiceNumber,
		GarbageRate:    snap.GarbageRate,
		Month:          snap.Month,
		Year:           snap.Year,
		Status:         PaymentStatusPendingReview,
		CreatedAt:      now,
	}
}
