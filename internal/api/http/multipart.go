package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/logger"
)

// bangkok is the wall clock residents enter transfer times in.
var bangkok = time.FixedZone("ICT", 7*60*60)

const defaultMaxUpload = 10 << 20

// parseForm accepts multipart or urlencoded bodies.
func parseForm(r *http.Request, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUpload
	}
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(maxBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		verr := &domain.ValidationError{}
		verr.Add("body", "invalid form: "+err.Error())
		return verr
	}
	return nil
}

// readAttachment returns nil when the form has no file under field. A file
// that cannot be read is reported against field so the resident can retry.
func readAttachment(r *http.Request, field string) (*domain.Attachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, unreadableFile(field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, unreadableFile(field, err)
	}
	return &domain.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func unreadableFile(field string, err error) error {
	logger.Debug("Unreadable upload", "field", field, "error", err)
	verr := &domain.ValidationError{}
	verr.Add(field, "ไม่สามารถอ่านไฟล์ได้ กรุณาแนบไฟล์อีกครั้ง")
	return verr
}

func formBool(r *http.Request, field string) bool {
	v, _ := strconv.ParseBool(r.FormValue(field))
	return v
}

// parseTransfer reads transferDate (YYYY-MM-DD) and the optional transferTime
// (HH:MM) in Bangkok time. Unparseable values come back as zero and are
// reported by the service as missing.
func parseTransfer(dateStr, timeStr string) (date, at time.Time) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), bangkok)
	if err != nil {
		return time.Time{}, time.Time{}
	}
	clock, err := time.ParseInLocation("15:04", strings.TrimSpace(timeStr), bangkok)
	if err != nil {
		return date, time.Time{}
	}
	at = time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, bangkok)
	return date, at
}
