// Package docstore is a minimal schemaless document store: named collections
// of documents addressed by an opaque string id, with equality queries and
// merge updates. Three backends exist: Firestore, a Postgres JSONB table and
// an in-memory store used by tests and local development.
package docstore

import (
	"context"
	"errors"
	"maps"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
)

// Collection names as they exist in the production Firestore project.
const (
	CollectionUsers         = "item"
	CollectionInvoices      = "invoice"
	CollectionPayments      = "payment"
	CollectionReports       = "Report"
	CollectionAnnouncements = "announcements"
)

// Document is one stored record. Data never contains the id unless the
// writer put it there explicitly.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter is a single equality predicate on a top-level field.
type Filter struct {
	Field string
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Store is implemented by every backend.
//
// Get and Update return domain.ErrNotFound when the document is missing. Any
// other backend failure wraps domain.ErrStoreUnavailable.
type Store interface {
	// Query returns every document of collection matching all filters, in
	// the backend's natural order.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	// Create stores data under a new store-generated id and returns it.
	// With WithIDField the id is also written into that field of the same
	// document in the same write.
	Create(ctx context.Context, collection string, data map[string]any, opts ...CreateOption) (string, error)
	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
}

type createOptions struct {
	idField string
}

type CreateOption func(*createOptions)

// WithIDField makes Create store the generated id under field.
func WithIDField(field string) CreateOption {
	return func(o *createOptions) { o.idField = field }
}

// withGeneratedID returns the document to write for id, leaving data untouched.
func withGeneratedID(data map[string]any, id string, opts []CreateOption) map[string]any {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	out := maps.Clone(data)
	if out == nil {
		out = make(map[string]any)
	}
	if o.idField != "" {
		out[o.idField] = id
	}
	return out
}

func filterArgs(filters []Filter) []any {
	fields := make([]string, len(filters))
	for i, f := range filters {
		fields[i] = f.Field
	}
	return []any{"filters", fields}
}

// logResult reports not-found lookups at debug level; they are an expected
// outcome of login and ownership checks.
func logResult(op, collection string, err error, args ...any) {
	if errors.Is(err, domain.ErrNotFound) {
		logger.StoreResult(op, collection, nil, append(args, "found", false)...)
		return
	}
	logger.StoreResult(op, collection, err, args...)
}
