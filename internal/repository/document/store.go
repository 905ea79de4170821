// Package document implements the repositories on top of a docstore.Store.
package document

import (
	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/repository"
)

type Store struct {
	docs docstore.Store
	repository.UserRepository
	repository.InvoiceRepository
	repository.PaymentRepository
	repository.ReportRepository
	repository.AnnouncementRepository
}

func NewStore(docs docstore.Store) *Store {
	return &Store{
		docs:                   docs,
		UserRepository:         NewUserRepository(docs),
		InvoiceRepository:      NewInvoiceRepository(docs),
		PaymentRepository:      NewPaymentRepository(docs),
		ReportRepository:       NewReportRepository(docs),
		AnnouncementRepository: NewAnnouncementRepository(docs),
	}
}
