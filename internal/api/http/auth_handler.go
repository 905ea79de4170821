package http

import (
	"net/http"

	"garbage-billing-backend/internal/domain"
	"garbage-billing-backend/internal/security"
	"garbage-billing-backend/internal/service"
)

type AuthHandler struct {
	authSvc      service.AuthService
	profileSvc   service.ProfileService
	tokenManager security.TokenManager
}

func NewAuthHandler(authSvc service.AuthService, profileSvc service.ProfileService, tm security.TokenManager) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, profileSvc: profileSvc, tokenManager: tm}
}

type sessionResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type loginRequest struct {
	IDCardNumber string `json:"idCardNumber"`
	Password     string `json:"password"`
}

type resetRequest struct {
	IDCardNumber    string `json:"idCardNumber"`
	FirstName       string `json:"firstName"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := decodeJSON(r, &reg); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.authSvc.Signup(r.Context(), reg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeSession(w, r, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.authSvc.Login(r.Context(), req.IDCardNumber, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeSession(w, r, http.StatusOK, user)
}

// Refresh trades a refresh token for a new pair. The user is reloaded so the
// access token carries the current identity number.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
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
	h.writeSession(w, r, http.StatusOK, user)
}

func (h *AuthHandler) VerifyForReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.authSvc.VerifyForReset(r.Context(), req.IDCardNumber, req.FirstName); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	err := h.authSvc.ResetPassword(r.Context(), req.IDCardNumber, req.FirstName, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	access, err := h.tokenManager.GenerateAccessToken(user.ID, user.IDCardNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}
	refresh, err := h.tokenManager.GenerateRefreshToken(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, sessionResponse{User: user, AccessToken: access, RefreshToken: refresh})
}
