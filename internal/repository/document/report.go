package document

import (
	"context"

	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/repository"
)

type reportRepository struct {
	store docstore.Store
}

func NewReportRepository(store docstore.Store) repository.ReportRepository {
	return &reportRepository{store: store}
}

func reportToMap(r *domain.Report) map[string]any {
	return map[string]any{
		"userId":      r.UserID,
		"firstName":   r.FirstName,
		"reportTitle": string(r.Title),
		"location":    r.Location,
		"details":     r.Details,
		"file":        optional(r.File),
		"status":      string(r.Status),
		"createdAt":   isoTime(r.CreatedAt),
	}
}

// reportFromDoc keeps stored titles verbatim even when they are no longer in
// the selectable list.
func reportFromDoc(doc docstore.Document) domain.Report {
	d := doc.Data
	status, _ := domain.ParseReportStatus(str(d, "status"))
	return domain.Report{
		ID:        doc.ID,
		UserID:    str(d, "userId"),
		FirstName: str(d, "firstName"),
		Title:     domain.ReportTitle(str(d, "reportTitle")),
		Location:  str(d, "location"),
		Details:   str(d, "details"),
		File:      strPtr(d, "file"),
		Status:    status,
		CreatedAt: timestamp(d, "createdAt"),
	}
}

func (r *reportRepository) Create(ctx context.Context, rep *domain.Report) error {
	id, err := createStamped(ctx, r.store, docstore.CollectionReports, reportToMap(rep))
	if id != "" {
		rep.ID = id
	}
	return err
}

func (r *reportRepository) ListByUser(ctx context.Context, userID string) ([]domain.Report, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionReports, docstore.Eq("userId", userID))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Report, 0, len(docs))
	for _, doc := range docs {
		out = append(out, reportFromDoc(doc))
	}
	return out, nil
}
