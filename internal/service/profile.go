package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/logger"
	"github.com/alexnev/accountcore/internal/model"
)

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Profile manages profile images over object storage. Adjacent to the auth
// core: nothing in the credential path depends on it.
type Profile struct {
	users     model.UserStore
	storage   model.Storage
	publicURL string
	logger    *logger.Logger
}

// NewProfile creates the profile image service. publicURL is the externally
// reachable root under which stored objects are served.
func NewProfile(users model.UserStore, storage model.Storage, publicURL string, logger *logger.Logger) *Profile {
	return &Profile{
		users:     users,
		storage:   storage,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}
}

// UploadAvatar stores a new profile image and points the user record at it.
// Unsupported content types are a ValidationError.
func (p *Profile) UploadAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", model.NewValidationError("Avatar must be a JPEG, PNG or WebP image.")
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.NewString(), ext)
	if err := p.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := p.publicURL + "/" + key
	if err := p.users.UpdateImage(ctx, userID, &url); err != nil {
		return "", fmt.Errorf("failed to update user image: %w", err)
	}

	p.logger.Info("profile service: avatar uploaded", "user_id", userID, "key", key)
	return url, nil
}

// DeleteAvatar removes the user's stored image, if any, and clears the
// reference. A user without an avatar is a no-op.
func (p *Profile) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}
	if user.Image == nil {
		return nil
	}

	if key, found := strings.CutPrefix(*user.Image, p.publicURL+"/"); found {
		if err := p.storage.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete avatar object: %w", err)
		}
	}

	if err := p.users.UpdateImage(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear user image: %w", err)
	}

	p.logger.Info("profile service: avatar deleted", "user_id", userID)
	return nil
}
