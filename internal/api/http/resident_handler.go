package http

import (
	"context"
	"net/http"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/service"
)

type ProfileHandler struct {
	profileSvc     service.ProfileService
	maxUploadBytes int64
}

func NewProfileHandler(profileSvc service.ProfileService, maxUploadBytes int64) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc, maxUploadBytes: maxUploadBytes}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.profileSvc.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var patch domain.ProfilePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.profileSvc.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := parseForm(r, h.maxUploadBytes); err != nil {
		writeError(w, r, err)
		return
	}
	img, err := readAttachment(r, "file")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if img == nil {
		verr := &domain.ValidationError{}
		verr.Add("file", "กรุณาเลือกรูปภาพ")
		writeError(w, r, verr)
		return
	}
	url, err := h.profileSvc.UploadProfileImage(r.Context(), userID, *img)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profileImage": url})
}

// BillingHandler serves invoices and payments.
type BillingHandler struct {
	profileSvc     service.ProfileService
	invoiceSvc     service.InvoiceService
	paymentSvc     service.PaymentService
	maxUploadBytes int64
}

func NewBillingHandler(
	profileSvc service.ProfileService,
	invoiceSvc service.InvoiceService,
	paymentSvc service.PaymentService,
	maxUploadBytes int64,
) *BillingHandler {
	return &BillingHandler{
		profileSvc:     profileSvc,
		invoiceSvc:     invoiceSvc,
		paymentSvc:     paymentSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *BillingHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := h.invoiceSvc.Dashboard(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	h.invoices(w, r, h.invoiceSvc.FindInvoicesByIdentity)
}

func (h *BillingHandler) PayableInvoices(w http.ResponseWriter, r *http.Request) {
	h.invoices(w, r, h.invoiceSvc.PayableInvoices)
}

// invoices resolves the caller's current identity number so a profile edit
// takes effect before the access token is refreshed.
func (h *BillingHandler) invoices(w http.ResponseWriter, r *http.Request, list func(context.Context, string) ([]domain.Invoice, error)) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.profileSvc.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	invoices, err := list(r.Context(), user.IDCardNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *BillingHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := parseForm(r, h.maxUploadBytes); err != nil {
		writeError(w, r, err)
		return
	}
	evidence, err := readAttachment(r, "file")
	if err != nil {
		writeError(w, r, err)
		return
	}

	date, at := parseTransfer(r.FormValue("transferDate"), r.FormValue("transferTime"))
	result, err := h.paymentSvc.Submit(r.Context(), userID, service.PaymentSubmission{
		InvoiceID:      r.FormValue("invoiceId"),
		TransferDate:   date,
		TransferTime:   at,
		AdditionalNote: r.FormValue("additionalNote"),
		Evidence:       evidence,
		Confirmed:      formBool(r, "confirmed"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *BillingHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	payments, err := h.paymentSvc.History(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

type ReportHandler struct {
	reportSvc      service.ReportService
	maxUploadBytes int64
}

func NewReportHandler(reportSvc service.ReportService, maxUploadBytes int64) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, maxUploadBytes: maxUploadBytes}
}

// Submit answers with the caller's history including the new entry, which
// stays marked unconfirmed until a fetch sees it.
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := parseForm(r, h.maxUploadBytes); err != nil {
		writeError(w, r, err)
		return
	}
	att, err := readAttachment(r, "file")
	if err != nil {
		writeError(w, r, err)
		return
	}
	history, err := h.reportSvc.Submit(r.Context(), userID, domain.ReportDraft{
		Title:      r.FormValue("reportTitle"),
		Location:   r.FormValue("location"),
		Details:    r.FormValue("details"),
		Attachment: att,
	}, formBool(r, "confirmed"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, history)
}

func (h *ReportHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	history, err := h.reportSvc.History(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *ReportHandler) Titles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.ReportTitles())
}

type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

func NewAnnouncementHandler(svc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: svc}
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.announcementSvc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
