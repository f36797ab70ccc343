package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/model"
)

var _ model.VerificationTokenStore = (*TokenRepository)(nil)

// TokenRepository persists single-use verification tokens.
type TokenRepository struct {
	db *Connection
}

// NewTokenRepository creates a TokenRepository on the shared connection.
func NewTokenRepository(db *Connection) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

func (r *TokenRepository) Create(ctx context.Context, token model.VerificationToken) error {
	query := `INSERT INTO verification_tokens (token_hash, user_id, purpose, expires_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, token.TokenHash, token.UserID, token.Purpose, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetByHash(ctx context.Context, tokenHash string, purpose model.TokenPurpose) (model.VerificationToken, error) {
	var token model.VerificationToken
	query := `SELECT token_hash, user_id, purpose, expires_at
			  FROM verification_tokens WHERE token_hash = $1 AND purpose = $2`

	err := r.db.QueryRowContext(ctx, query, tokenHash, purpose).Scan(
		&token.TokenHash, &token.UserID, &token.Purpose, &token.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.VerificationToken{}, model.ErrNotFound
		}
		return model.VerificationToken{}, fmt.Errorf("failed to get verification token: %w", err)
	}
	return token, nil
}

// Delete removes the token row and reports whether it existed. Concurrent
// deletes of the same hash see at most one true result.
func (r *TokenRepository) Delete(ctx context.Context, tokenHash string) (bool, error) {
	query := `DELETE FROM verification_tokens WHERE token_hash = $1`

	result, err := r.db.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return false, fmt.Errorf("failed to delete verification token: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

func (r *TokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID, purpose model.TokenPurpose) error {
	query := `DELETE FROM verification_tokens WHERE user_id = $1 AND purpose = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, purpose); err != nil {
		return fmt.Errorf("failed to delete verification tokens: %w", err)
	}
	return nil
}
