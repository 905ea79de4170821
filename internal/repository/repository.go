package repository

import (
	"context"

	"garbage-billing-backend/internal/domain"
)

type UserRepository interface {
	// Create persists u, then stamps the generated key into the stored `id`
	// field and onto u.ID.
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// FindByCredentials runs a single equality query on both fields.
	FindByCredentials(ctx context.Context, idCardNumber, password string) ([]domain.User, error)
	FindByIDCardAndFirstName(ctx context.Context, idCardNumber, firstName string) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) error
	SetPassword(ctx context.Context, id, password string) error
	SetProfileImage(ctx context.Context, id, url string) error
}

type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	ListByIDCardNumber(ctx context.Context, idCardNumber string) ([]domain.Invoice, error)
	ListByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
}

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	ListByUser(ctx context.Context, userID string) ([]domain.Report, error)
}

type AnnouncementRepository interface {
	List(ctx context.Context) ([]domain.Announcement, error)
}
