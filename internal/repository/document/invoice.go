package document

import (
	"context"

	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/repository"
)

// Invoices are written by the back office; this repository only reads them.
type invoiceRepository struct {
	store docstore.Store
}

func NewInvoiceRepository(store docstore.Store) repository.InvoiceRepository {
	return &invoiceRepository{store: store}
}

func invoiceFromDoc(doc docstore.Document) domain.Invoice {
	d := doc.Data
	status, _ := domain.ParseInvoiceStatus(str(d, "status"))
	return domain.Invoice{
		ID:            doc.ID,
		InvoiceNumber: str(d, "invoiceNumber"),
		IDCardNumber:  str(d, "idCardNumber"),
		UserID:        str(d, "userId"),
		Month:         str(d, "month"),
		Year:          str(d, "year"),
		GarbageRate:   domain.ParseAmount(d["garbagerate"]),
		Status:        status,
		AmountPaid:    domain.ParseAmount(d["amountPaid"]),
	}
}

func invoicesFromDocs(docs []docstore.Document) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(docs))
	for _, doc := range docs {
		out = append(out, invoiceFromDoc(doc))
	}
	return out
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	doc, err := r.store.Get(ctx, docstore.CollectionInvoices, id)
	if err != nil {
		return nil, err
	}
	inv := invoiceFromDoc(doc)
	return &inv, nil
}

func (r *invoiceRepository) ListByIDCardNumber(ctx context.Context, idCardNumber string) ([]domain.Invoice, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionInvoices, docstore.Eq("idCardNumber", idCardNumber))
	if err != nil {
		return nil, err
	}
	return invoicesFromDocs(docs), nil
}

func (r *invoiceRepository) ListByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionInvoices, docstore.Eq("status", string(status)))
	if err != nil {
		return nil, err
	}
	return invoicesFromDocs(docs), nil
}
