package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexnev/accountcore/internal/model"
)

func TestTokenRepository_Create(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewTokenRepository(conn)

	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	mock.ExpectExec(`INSERT INTO verification_tokens`).
		WithArgs("hash-value", userID, model.PurposeEmailVerification, expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), model.VerificationToken{
		TokenHash: "hash-value",
		UserID:    userID,
		Purpose:   model.PurposeEmailVerification,
		ExpiresAt: expiresAt,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetByHash(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewTokenRepository(conn)

	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	mock.ExpectQuery(`SELECT token_hash, user_id, purpose, expires_at\s+FROM verification_tokens WHERE token_hash = \$1 AND purpose = \$2`).
		WithArgs("hash-value", model.PurposePasswordReset).
		WillReturnRows(sqlmock.NewRows([]string{"token_hash", "user_id", "purpose", "expires_at"}).
			AddRow("hash-value", userID, "password_reset", expiresAt))

	token, err := repo.GetByHash(context.Background(), "hash-value", model.PurposePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, userID, token.UserID)
	assert.Equal(t, model.PurposePasswordReset, token.Purpose)
}

func TestTokenRepository_GetByHash_NotFound(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewTokenRepository(conn)

	mock.ExpectQuery(`SELECT token_hash, user_id, purpose, expires_at`).
		WithArgs("missing", model.PurposeEmailVerification).
		WillReturnRows(sqlmock.NewRows([]string{"token_hash", "user_id", "purpose", "expires_at"}))

	_, err := repo.GetByHash(context.Background(), "missing", model.PurposeEmailVerification)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTokenRepository_Delete_ReportsClaim(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewTokenRepository(conn)

	mock.ExpectExec(`DELETE FROM verification_tokens WHERE token_hash = \$1`).
		WithArgs("hash-value").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "hash-value")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestTokenRepository_Delete_AlreadyGone(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewTokenRepository(conn)

	mock.ExpectExec(`DELETE FROM verification_tokens WHERE token_hash = \$1`).
		WithArgs("hash-value").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "hash-value")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestTokenRepository_DeleteByUser(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewTokenRepository(conn)

	userID := uuid.New()
	mock.ExpectExec(`DELETE FROM verification_tokens WHERE user_id = \$1 AND purpose = \$2`).
		WithArgs(userID, model.PurposePasswordReset).
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, repo.DeleteByUser(context.Background(), userID, model.PurposePasswordReset))
	assert.NoError(t, mock.ExpectationsWereMet())
}
