package document

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"garbage-billing-backend/internal/docstore"

	"github.com/shopspring/decimal"
)

// Stored documents are written by several clients (the mobile app, the back
// office, this service), so every reader is lenient: wrong types decode to
// the zero value instead of failing the whole list.

func str(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func strPtr(data map[string]any, key string) *string {
	v, ok := data[key].(string)
	if !ok {
		return nil
	}
	return &v
}

func timestamp(data map[string]any, key string) time.Time {
	switch v := data[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// amount encodes a nullable decimal the way the mobile app stores it: a JSON
// number, or null when absent.
func amount(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

// isoTime writes times as RFC 3339 strings in UTC, the format the mobile app
// writes and parses with `new Date(...)`. The zero time is stored as null.
func isoTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// createStamped creates a document whose `id` field holds its own key;
// several queries filter on that stored field. The id is part of the single
// create, so a failed create leaves nothing behind.
func createStamped(ctx context.Context, store docstore.Store, collection string, data map[string]any) (string, error) {
	return store.Create(ctx, collection, data, docstore.WithIDField("id"))
}
