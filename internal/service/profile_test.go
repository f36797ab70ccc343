package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexnev/accountcore/internal/mocks"
	"github.com/alexnev/accountcore/internal/model"
	"github.com/alexnev/accountcore/internal/testutil"
)

func TestProfile_UploadAvatar_Success(t *testing.T) {
	users := &mocks.UserStore{}
	storage := &mocks.Storage{}
	userID := uuid.New()

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "avatars/"+userID.String()+"/") && strings.HasSuffix(key, ".png")
	}), mock.Anything, int64(42), "image/png").Return(nil)
	users.On("UpdateImage", mock.Anything, userID, mock.MatchedBy(func(url *string) bool {
		return url != nil && strings.HasPrefix(*url, "https://cdn.example.com/avatars/")
	})).Return(nil)

	p := NewProfile(users, storage, "https://cdn.example.com/", testutil.MakeNoopLogger())

	url, err := p.UploadAvatar(context.Background(), userID, strings.NewReader("img"), 42, "image/png")
	require.NoError(t, err)
	assert.Contains(t, url, "avatars/"+userID.String())
}

func TestProfile_UploadAvatar_UnsupportedType(t *testing.T) {
	users := &mocks.UserStore{}
	storage := &mocks.Storage{}

	p := NewProfile(users, storage, "https://cdn.example.com", testutil.MakeNoopLogger())

	_, err := p.UploadAvatar(context.Background(), uuid.New(), strings.NewReader("x"), 1, "image/gif")
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProfile_DeleteAvatar(t *testing.T) {
	users := &mocks.UserStore{}
	storage := &mocks.Storage{}
	userID := uuid.New()
	image := "https://cdn.example.com/avatars/" + userID.String() + "/pic.png"

	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Image: &image}, nil)
	storage.On("Delete", mock.Anything, "avatars/"+userID.String()+"/pic.png").Return(nil)
	users.On("UpdateImage", mock.Anything, userID, (*string)(nil)).Return(nil)

	err := NewProfile(users, storage, "https://cdn.example.com", testutil.MakeNoopLogger()).
		DeleteAvatar(context.Background(), userID)
	assert.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestProfile_DeleteAvatar_NoImageIsNoop(t *testing.T) {
	users := &mocks.UserStore{}
	storage := &mocks.Storage{}
	userID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID}, nil)

	err := NewProfile(users, storage, "https://cdn.example.com", testutil.MakeNoopLogger()).
		DeleteAvatar(context.Background(), userID)
	assert.NoError(t, err)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "UpdateImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfile_DeleteAvatar_ForeignURLSkipsObjectDelete(t *testing.T) {
	users := &mocks.UserStore{}
	storage := &mocks.Storage{}
	userID := uuid.New()
	image := "https://other.example.org/pic.png"

	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Image: &image}, nil)
	users.On("UpdateImage", mock.Anything, userID, (*string)(nil)).Return(nil)

	err := NewProfile(users, storage, "https://cdn.example.com", testutil.MakeNoopLogger()).
		DeleteAvatar(context.Background(), userID)
	assert.NoError(t, err)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
