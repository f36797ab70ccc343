package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexnev/accountcore/internal/model"
	"github.com/alexnev/accountcore/internal/service"
	"github.com/alexnev/accountcore/internal/testutil"
)

type accountServiceMock struct {
	mock.Mock
}

func (m *accountServiceMock) SignUp(ctx context.Context, input service.SignUpInput) (service.SignUpResult, error) {
	ret := m.Called(ctx, input)
	return ret.Get(0).(service.SignUpResult), ret.Error(1)
}

func (m *accountServiceMock) VerifyEmail(ctx context.Context, rawToken string) error {
	return m.Called(ctx, rawToken).Error(0)
}

func (m *accountServiceMock) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *accountServiceMock) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	return m.Called(ctx, rawToken, newPassword).Error(0)
}

func TestAccount_SignUp(t *testing.T) {
	svc := &accountServiceMock{}
	userID := uuid.New()
	svc.On("SignUp", mock.Anything, service.SignUpInput{
		Email:    "new@example.com",
		Password: "Password123",
		Name:     "New User",
	}).Return(service.SignUpResult{UserID: userID, VerificationToken: "raw"}, nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	body := `{"email":"new@example.com","password":"Password123","name":"New User"}`
	h.SignUp(rec, httptest.NewRequest("POST", "/api/account/signup", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp["user_id"])
}

func TestAccount_SignUp_ValidationError(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("SignUp", mock.Anything, mock.Anything).
		Return(service.SignUpResult{}, model.NewValidationError("Password must be at least 10 characters."))

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest("POST", "/api/account/signup", strings.NewReader(`{"email":"a@b.c","password":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password must be at least 10 characters.")
}

func TestAccount_SignUp_EmailTaken(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("SignUp", mock.Anything, mock.Anything).Return(service.SignUpResult{}, model.ErrEmailTaken)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest("POST", "/api/account/signup", strings.NewReader(`{"email":"taken@b.c","password":"Password123"}`)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAccount_SignUp_BadBody(t *testing.T) {
	h := NewAccount(&accountServiceMock{}, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest("POST", "/api/account/signup", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccount_VerifyEmail(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("VerifyEmail", mock.Anything, "the-token").Return(nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, httptest.NewRequest("GET", "/api/account/verify-email?token=the-token", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccount_VerifyEmail_MissingToken(t *testing.T) {
	svc := &accountServiceMock{}
	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, httptest.NewRequest("GET", "/api/account/verify-email", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "VerifyEmail", mock.Anything, mock.Anything)
}

func TestAccount_VerifyEmail_Expired(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("VerifyEmail", mock.Anything, "stale").Return(model.ErrTokenExpired)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.VerifyEmail(rec, httptest.NewRequest("GET", "/api/account/verify-email?token=stale", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAccount_ForgotPassword_AlwaysOK(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("RequestPasswordReset", mock.Anything, "anything@example.com").Return(nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, httptest.NewRequest("POST", "/api/account/forgot-password", strings.NewReader(`{"email":"anything@example.com"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccount_ResetPassword(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("ResetPassword", mock.Anything, "reset-token", "NewPassword1").Return(nil)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.ResetPassword(rec, httptest.NewRequest("POST", "/api/account/reset-password", strings.NewReader(`{"token":"reset-token","password":"NewPassword1"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccount_ResetPassword_UnknownToken(t *testing.T) {
	svc := &accountServiceMock{}
	svc.On("ResetPassword", mock.Anything, "bogus", "NewPassword1").Return(model.ErrNotFound)

	h := NewAccount(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.ResetPassword(rec, httptest.NewRequest("POST", "/api/account/reset-password", strings.NewReader(`{"token":"bogus","password":"NewPassword1"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
