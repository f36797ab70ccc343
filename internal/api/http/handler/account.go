package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/service"
)

// AccountService is the account lifecycle surface the HTTP layer needs.
type AccountService interface {
	SignUp(ctx context.Context, input service.SignUpInput) (service.SignUpResult, error)
	VerifyEmail(ctx context.Context, rawToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

// Account handles registration, email verification and password reset
// endpoints.
type Account struct {
	service AccountService
	logger  *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(service AccountService, logger *logger.Logger) *Account {
	return &Account{service: service, logger: logger}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signUpResponse struct {
	UserID string `json:"user_id"`
}

// SignUp handles POST /api/account/signup.
func (h *Account) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SignUp(r.Context(), service.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, signUpResponse{UserID: result.UserID.String()})
}

// VerifyEmail handles GET /api/account/verify-email?token=...
func (h *Account) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	rawToken := r.URL.Query().Get("token")
	if rawToken == "" {
		respondError(w, http.StatusBadRequest, "This link is invalid or has already been used.")
		return
	}

	if err := h.service.VerifyEmail(r.Context(), rawToken); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/account/forgot-password. The response
// is 200 regardless of whether the email maps to an account, so the
// endpoint cannot be used to enumerate addresses.
func (h *Account) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "If an account exists for that address, a reset link has been sent.",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /api/account/reset-password.
func (h *Account) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
