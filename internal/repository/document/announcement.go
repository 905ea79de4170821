package document

import (
	"context"

	"garbage-billing-backend/internal/docstore"
	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/repository"
)

type announcementRepository struct {
	store docstore.Store
}

func NewAnnouncementRepository(store docstore.Store) repository.AnnouncementRepository {
	return &announcementRepository{store: store}
}

func (r *announcementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	docs, err := r.store.Query(ctx, docstore.CollectionAnnouncements)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Announcement, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.Announcement{
			ID:    doc.ID,
			Title: str(doc.Data, "title"),
			Image: str(doc.Data, "image"),
		})
	}
	return out, nil
}
