package document

import (
	"context"

	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/repository"
)

type paymentRepository struct {
	store docstore.Store
}

func NewPaymentRepository(store docstore.Store) repository.PaymentRepository {
	return &paymentRepository{store: store}
}

func paymentToMap(p *domain.Payment) map[string]any {
	return map[string]any{
		"userId":         p.UserID,
		"firstName":      p.FirstName,
		"lastName":       p.LastName,
		"idCardNumber":   p.IDCardNumber,
		"transferDate":   isoTime(p.TransferDate),
		"transferTime":   isoTime(p.TransferTime),
		"additionalNote": p.AdditionalNote,
		"file":           optional(p.File),
		"invoiceId":      p.InvoiceID,
		"invoiceNumber":  p.InvoiceNumber,
		"garbagerate":    amount(p.GarbageRate),
		"month":          p.Month,
		"year":           p.Year,
		"status":         string(p.Status),
		"createdAt":      isoTime(p.CreatedAt),
	}
}

func paymentFromDoc(doc docstore.Document) domain.Payment {
	d := doc.Data
	status, _ := domain.ParsePaymentStatus(str(d, "status"))
	return domain.Payment{
		ID:             doc.ID,
		UserID:         str(d, "userId"),
		FirstName:      str(d, "firstName"),
		LastName:       str(d, "lastName"),
		IDCardNumber:   str(d, "idCardNumber"),
		TransferDate:   timestamp(d, "transferDate"),
		TransferTime:   timestamp(d, "transferTime"),
		AdditionalNote: str(d, "additionalNote"),
		File:           strPtr(d, "file"),
		InvoiceID:      str(d, "invoiceId"),
		InvoiceNumber:  str(d, "invoiceNumber"),
		GarbageRate:    domain.ParseAmount(d["garbagerate"]),
		Month:          str(d, "month"),
		Year:           str(d, "year"),
		Status:         status,
		CreatedAt:      timestamp(d, "createdAt"),
	}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	id, err := createStamped(ctx, r.store, docstore.CollectionPayments, paymentToMap(p))
	if id != "" {
		p.ID = id
	}
	return err
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionPayments, docstore.Eq("userId", userID))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, paymentFromDoc(doc))
	}
	return out, nil
}
