package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
)

type errorResponse struct {
	Error     string              `json:"error"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	Retryable bool                `json:"retryable,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service errors onto status codes. Not-found never says
// which lookup field failed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "ไม่พบข้อมูล")
	case errors.Is(err, domain.ErrNotConfirmed):
		writeMessage(w, http.StatusPreconditionRequired, err.Error())
	case errors.Is(err, domain.ErrInvoiceNotPayable):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUploadFailed):
		logger.Error("Upload failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "อัปโหลดไฟล์ไม่สำเร็จ", Retryable: true})
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("Document store unavailable", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "ระบบไม่พร้อมใช้งาน กรุณาลองใหม่", Retryable: true})
	case errors.Is(err, errNoClaims):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("Unhandled request error", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a JSON body into dst. A malformed body is a validation
// failure on the whole request.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		verr := &domain.ValidationError{}
		verr.Add("body", "invalid JSON: "+err.Error())
		return verr
	}
	return nil
}
