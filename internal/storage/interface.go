package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Key prefixes used by the mobile app for attachments.
const (
	CategoryPaymentEvidence = "images"
	CategoryReport          = "Report"
	CategoryProfile         = "profileImages"
)

// Handle identifies an uploaded object. Token is backend specific (the
// Firebase download token); it is empty for backends that do not need one.
type Handle struct {
	Key   string
	Token string
}

// BlobStore is an upload-then-resolve object store for image attachments.
type BlobStore interface {
	// Upload stores data under key and returns a handle for DownloadURL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (Handle, error)

	// DownloadURL resolves a handle into a URL a client can fetch.
	DownloadURL(ctx context.Context, h Handle) (string, error)
}

// ObjectKey builds `<category>/<entityID>/<prefix><unix-millis>-<uuid>.jpg`.
// entityID may be empty. The random suffix keeps two uploads in the same
// millisecond apart.
func ObjectKey(category, entityID, prefix string, now time.Time) string {
	name := fmt.Sprintf("%s%d-%s.jpg", prefix, now.UnixMilli(), uuid.NewString())
	parts := []string{category}
	if entityID != "" {
		parts = append(parts, entityID)
	}
	return strings.Join(append(parts, name), "/")
}
