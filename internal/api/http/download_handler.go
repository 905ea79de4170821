package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/storage"

	"github.com/gorilla/mux"
)

// FileOpener is the read side of the local blob store.
type FileOpener interface {
	Open(key string) (io.ReadCloser, error)
}

// DownloadHandler serves blobs written by storage.LocalStorage.
type DownloadHandler struct {
	files FileOpener
}

func NewDownloadHandler(files FileOpener) *DownloadHandler {
	return &DownloadHandler{files: files}
}

// Download handles GET /api/v1/download/{token}?key=. The token must be the
// encoded form of key so that URLs cannot be forged by editing the query.
func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}
	if mux.Vars(r)["token"] != storage.EncodeKey(key) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	file, err := h.files.Open(key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) && !errors.Is(err, storage.ErrInvalidKey) {
			logger.Warn("Failed to open blob", "key", key, "error", err)
		}
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	// Determine content type from file extension
	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream blob", "key", key, "error", err)
	}
}
