package docstore

import (
	"context"
	"errors"
	"fmt"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore is the production backend. Documents keep Firestore's
// auto-generated ids.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	logger.StoreCall("query", collection, filterArgs(filters)...)

	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, "==", f.Value)
	}
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			err = classifyFirestoreError("query", err)
			logResult("query", collection, err)
			return nil, err
		}
		out = append(out, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	logResult("query", collection, nil, "count", len(out))
	return out, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Document, error) {
	logger.StoreCall("get", collection, "id", id)

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		err = classifyFirestoreError("get", err)
		logResult("get", collection, err, "id", id)
		return Document{}, err
	}
	logResult("get", collection, nil, "id", id)
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// Create allocates the document reference first so the id can be part of
// the single write.
func (s *FirestoreStore) Create(ctx context.Context, collection string, data map[string]any, opts ...CreateOption) (string, error) {
	logger.StoreCall("create", collection)

	ref := s.client.Collection(collection).NewDoc()
	if _, err := ref.Create(ctx, withGeneratedID(data, ref.ID, opts)); err != nil {
		err = classifyFirestoreError("create", err)
		logResult("create", collection, err)
		return "", err
	}
	logResult("create", collection, nil, "id", ref.ID)
	return ref.ID, nil
}

// Update applies fields as top-level field updates. Firestore rejects the
// write with NotFound when the document does not exist.
func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	logger.StoreCall("update", collection, "id", id)

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if len(updates) == 0 {
		logResult("update", collection, nil, "id", id, "noop", true)
		return nil
	}

	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		err = classifyFirestoreError("update", err)
		logResult("update", collection, err, "id", id)
		return err
	}
	logResult("update", collection, nil, "id", id)
	return nil
}

// classifyFirestoreError maps a gRPC NotFound to domain.ErrNotFound and every
// other failure to domain.ErrStoreUnavailable.
func classifyFirestoreError(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	return fmt.Errorf("firestore %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
