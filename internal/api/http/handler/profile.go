package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// ProfileService is the profile management surface the HTTP layer needs.
type ProfileService interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	DeleteAvatar(ctx context.Context, userID uuid.UUID) error
}

// Profile handles avatar upload and removal for the authenticated user.
type Profile struct {
	service        ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(service ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{service: service, contextManager: contextManager, logger: logger}
}

type avatarResponse struct {
	Image string `json:"image"`
}

// UploadAvatar handles POST /api/profile/avatar. The request body is the
// raw image; Content-Type names the format.
func (h *Profile) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	imageURL, err := h.service.UploadAvatar(r.Context(), claims.UserID, body, r.ContentLength, r.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, avatarResponse{Image: imageURL})
}

// DeleteAvatar handles DELETE /api/profile/avatar.
func (h *Profile) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.DeleteAvatar(r.Context(), claims.UserID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
