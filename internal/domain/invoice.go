package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusOutstanding InvoiceStatus = "ค้างชำระ"
	InvoiceStatusPaid        InvoiceStatus = "ชำระแล้ว"
	InvoiceStatusFailed      InvoiceStatus = "ชำระไม่สำเร็จ"

	// InvoiceStatusUnknown marks a stored value outside the known set. It is
	// only produced when reading; the engine never writes it.
	InvoiceStatusUnknown InvoiceStatus = ""
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch st := InvoiceStatus(strings.TrimSpace(s)); st {
	case InvoiceStatusOutstanding, InvoiceStatusPaid, InvoiceStatusFailed:
		return st, nil
	default:
		return InvoiceStatusUnknown, fmt.Errorf("unknown invoice status %q", s)
	}
}

// Payable reports whether a payment may be submitted against an invoice in this status.
func (s InvoiceStatus) Payable() bool {
	return s == InvoiceStatusOutstanding || s == InvoiceStatusFailed
}

// Invoice is one monthly garbage-collection bill. Invoices are generated by
// the back office; the engine only reads them.
type Invoice struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoiceNumber,omitempty"`
	IDCardNumber  string              `json:"idCardNumber"`
	UserID        string              `json:"userId"`
	Month         string              `json:"month"`
	Year          string              `json:"year"`
	GarbageRate   decimal.NullDecimal `json:"garbagerate"`
	Status        InvoiceStatus       `json:"status"`
	AmountPaid    decimal.NullDecimal `json:"amountPaid"`
}

func (i Invoice) Period() Period {
	return ParsePeriod(i.Year, i.Month)
}

// Rate returns the nominal amount owed, zero when missing or unparseable.
func (i Invoice) Rate() decimal.Decimal {
	if !i.GarbageRate.Valid {
		return decimal.Zero
	}
	return i.GarbageRate.Decimal
}

// SettledAmount is the amount shown in payment history: the settled
// amountPaid when present and non-zero, the nominal rate otherwise. A zero
// amountPaid is what the back office leaves on invoices it never settled.
func (i Invoice) SettledAmount() decimal.Decimal {
	if i.AmountPaid.Valid && !i.AmountPaid.Decimal.IsZero() {
		return i.AmountPaid.Decimal
	}
	return i.Rate()
}

// FilterInvoices returns the invoices whose status is one of statuses,
// preserving order.
func FilterInvoices(invoices []Invoice, statuses ...InvoiceStatus) []Invoice {
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		for _, st := range statuses {
			if inv.Status == st {
				out = append(out, inv)
				break
			}
		}
	}
	return out
}

// OutstandingTotal sums garbagerate over outstanding invoices. Missing or
// unparseable rates contribute zero.
func OutstandingTotal(invoices []Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status != InvoiceStatusOutstanding {
			continue
		}
		total = total.Add(inv.Rate())
	}
	return total
}

// PaidEntry is one row of the paid-invoice history.
type PaidEntry struct {
	Invoice Invoice         `json:"invoice"`
	Amount  decimal.Decimal `json:"amount"`
}

// PaymentHistory filters to paid invoices and resolves the displayed amount.
func PaymentHistory(invoices []Invoice) []PaidEntry {
	paid := FilterInvoices(invoices, InvoiceStatusPaid)
	out := make([]PaidEntry, 0, len(paid))
	for _, inv := range paid {
		out = append(out, PaidEntry{Invoice: inv, Amount: inv.SettledAmount()})
	}
	return out
}
