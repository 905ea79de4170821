package service

import (
	"context"
	"time"

	"garbage-billing-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AuthService interface {
	Signup(ctx context.Context, reg domain.Registration) (*domain.User, error)
	// Login returns domain.ErrNotFound for any mismatch without saying which field was wrong.
	Login(ctx context.Context, idCardNumber, password string) (*domain.User, error)
	VerifyForReset(ctx context.Context, idCardNumber, firstName string) error
	ResetPassword(ctx context.Context, idCardNumber, firstName, newPassword, confirmPassword string) error
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error)
	UploadProfileImage(ctx context.Context, userID string, img domain.Attachment) (string, error)
}

// Dashboard is everything the home screen shows in one call.
type Dashboard struct {
	Invoices         []domain.Invoice   `json:"invoices"`
	Outstanding      []domain.Invoice   `json:"outstanding"`
	OutstandingTotal decimal.Decimal    `json:"outstandingTotal"`
	PaymentHistory   []domain.PaidEntry `json:"paymentHistory"`
}

type InvoiceService interface {
	FindInvoicesByIdentity(ctx context.Context, idCardNumber string) ([]domain.Invoice, error)
	PayableInvoices(ctx context.Context, idCardNumber string) ([]domain.Invoice, error)
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
}

// PaymentSubmission is the transfer form. Confirmed records that the
// resident accepted the confirmation prompt.
type PaymentSubmission struct {
	InvoiceID      string
	TransferDate   time.Time
	TransferTime   time.Time
	AdditionalNote string
	Evidence       *domain.Attachment
	Confirmed      bool
}

// PaymentResult carries the created payment and the refreshed lists so the
// caller can redraw without another round trip.
type PaymentResult struct {
	Payment domain.Payment   `json:"payment"`
	Payable []domain.Invoice `json:"payable"`
	History []domain.Payment `json:"history"`
}

type PaymentService interface {
	Submit(ctx context.Context, userID string, sub PaymentSubmission) (*PaymentResult, error)
	History(ctx context.Context, userID string) ([]domain.Payment, error)
}

// ReportEntry is a history row. Unconfirmed entries were appended locally
// after submission and have not yet been seen in a fetch from the store.
type ReportEntry struct {
	domain.Report
	Unconfirmed bool `json:"unconfirmed"`
}

type ReportService interface {
	Submit(ctx context.Context, userID string, draft domain.ReportDraft, confirmed bool) ([]ReportEntry, error)
	// Cached returns the in-memory history without touching the store. It is
	// empty for users with nothing unconfirmed.
	Cached(userID string) []ReportEntry
	History(ctx context.Context, userID string) ([]ReportEntry, error)
	// ReconcileAll refreshes every cached history that still holds unconfirmed entries.
	ReconcileAll(ctx context.Context) (int, error)
}

type AnnouncementService interface {
	List(ctx context.Context) ([]domain.Announcement, error)
}

// OutstandingDigest summarizes unpaid invoices for the back office.
type OutstandingDigest struct {
	GeneratedAt  time.Time
	InvoiceCount int
	Residents    int
	Total        decimal.Decimal
	Failed       int
}

type EmailService interface {
	SendOutstandingDigest(ctx context.Context, to []string, digest OutstandingDigest) error
}
