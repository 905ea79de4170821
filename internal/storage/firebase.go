package storage

import (
	"context"
	"fmt"
	"net/url"

	"garbage-billing-backend/internal/logger"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const downloadTokenMetadata = "firebaseStorageDownloadTokens"

// FirebaseStorage writes objects to a Firebase Storage bucket and resolves
// them to token URLs, the same URLs the Firebase client SDK hands out.
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStorage(bucket *gcs.BucketHandle, bucketName string) *FirebaseStorage {
	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}
}

func (s *FirebaseStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (Handle, error) {
	logger.BlobCall("upload", key, "bytes", len(data), "bucket", s.bucketName)

	token := uuid.NewString()
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{downloadTokenMetadata: token}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		err = fmt.Errorf("write %s: %w", key, err)
		logger.BlobResult("upload", key, err)
		return Handle{}, err
	}
	if err := w.Close(); err != nil {
		err = fmt.Errorf("close %s: %w", key, err)
		logger.BlobResult("upload", key, err)
		return Handle{}, err
	}

	logger.BlobResult("upload", key, nil)
	return Handle{Key: key, Token: token}, nil
}

func (s *FirebaseStorage) DownloadURL(ctx context.Context, h Handle) (string, error) {
	return firebaseDownloadURL(s.bucketName, h), nil
}

func firebaseDownloadURL(bucket string, h Handle) string {
	u := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.PathEscape(h.Key))
	if h.Token != "" {
		u += "&token=" + url.QueryEscape(h.Token)
	}
	return u
}
