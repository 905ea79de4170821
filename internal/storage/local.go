package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"garbage-billing-backend/internal/logger"
)

var ErrInvalidKey = errors.New("invalid object key")

// LocalStorage implements BlobStore on the local filesystem. Files are served
// back by the HTTP download route, so it is for development and demos.
type LocalStorage struct {
	baseURL    string // Server URL (e.g., "http://localhost:8080")
	uploadsDir string
}

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(baseURL, uploadsDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{
		baseURL:    strings.TrimRight(baseURL, "/"),
		uploadsDir: uploadsDir,
	}, nil
}

// path resolves key inside the uploads directory, rejecting traversal.
func (s *LocalStorage) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.uploadsDir, filepath.FromSlash(key)), nil
}

func (s *LocalStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (Handle, error) {
	logger.BlobCall("upload", key, "bytes", len(data), "content_type", contentType)

	fullPath, err := s.path(key)
	if err != nil {
		logger.BlobResult("upload", key, err)
		return Handle{}, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		err = fmt.Errorf("failed to create directories: %w", err)
		logger.BlobResult("upload", key, err)
		return Handle{}, err
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		err = fmt.Errorf("failed to write file: %w", err)
		logger.BlobResult("upload", key, err)
		return Handle{}, err
	}

	logger.BlobResult("upload", key, nil)
	return Handle{Key: key}, nil
}

// DownloadURL points at the server's download route. The path segment is a
// hash of the key that the route checks before serving.
func (s *LocalStorage) DownloadURL(ctx context.Context, h Handle) (string, error) {
	if _, err := s.path(h.Key); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/api/v1/download/%s?key=%s", s.baseURL, EncodeKey(h.Key), url.QueryEscape(h.Key)), nil
}

// Open opens a stored file for the download route.
func (s *LocalStorage) Open(key string) (io.ReadCloser, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// EncodeKey creates a URL-safe hash of the key.
func EncodeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
