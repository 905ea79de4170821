package http

import (
	"net/http"

	"garbage-billing-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router mounts. Files is nil unless blobs
// are kept on the local filesystem.
type Handlers struct {
	Auth          *AuthHandler
	Profile       *ProfileHandler
	Billing       *BillingHandler
	Reports       *ReportHandler
	Announcements *AnnouncementHandler
	Files         *DownloadHandler
}

// NewRouter registers every route under its security name. The names are
// looked up in config.EndpointSecurityConfig by the auth middleware.
func NewRouter(h Handlers, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(NewAuthMiddleware(tm).Handler)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet).Name("health")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost).Name("auth.signup")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost).Name("auth.refresh")
	api.HandleFunc("/auth/reset/verify", h.Auth.VerifyForReset).Methods(http.MethodPost).Name("auth.reset.verify")
	api.HandleFunc("/auth/reset", h.Auth.ResetPassword).Methods(http.MethodPost).Name("auth.reset")

	api.HandleFunc("/profile", h.Profile.Get).Methods(http.MethodGet).Name("profile.get")
	api.HandleFunc("/profile", h.Profile.Update).Methods(http.MethodPatch).Name("profile.update")
	api.HandleFunc("/profile/image", h.Profile.UploadImage).Methods(http.MethodPost).Name("profile.image")

	api.HandleFunc("/dashboard", h.Billing.Dashboard).Methods(http.MethodGet).Name("dashboard.get")
	api.HandleFunc("/invoices", h.Billing.ListInvoices).Methods(http.MethodGet).Name("invoices.list")
	api.HandleFunc("/invoices/payable", h.Billing.PayableInvoices).Methods(http.MethodGet).Name("invoices.payable")
	api.HandleFunc("/payments", h.Billing.SubmitPayment).Methods(http.MethodPost).Name("payments.submit")
	api.HandleFunc("/payments", h.Billing.PaymentHistory).Methods(http.MethodGet).Name("payments.list")

	api.HandleFunc("/reports/titles", h.Reports.Titles).Methods(http.MethodGet).Name("reports.titles")
	api.HandleFunc("/reports", h.Reports.Submit).Methods(http.MethodPost).Name("reports.submit")
	api.HandleFunc("/reports", h.Reports.History).Methods(http.MethodGet).Name("reports.list")

	api.HandleFunc("/announcements", h.Announcements.List).Methods(http.MethodGet).Name("announcements.list")

	if h.Files != nil {
		api.HandleFunc("/download/{token}", h.Files.Download).Methods(http.MethodGet).Name("files.download")
	}

	return router
}
