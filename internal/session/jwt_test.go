package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexnev/accountcore/internal/model"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifier_Verify(t *testing.T) {
	userID := uuid.New()
	tokenString := signToken(t, "secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: userID,
		Role:   "ADMIN",
	})

	claims, err := NewVerifier("secret").Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestVerifier_Verify_UnknownRoleDowngraded(t *testing.T) {
	tokenString := signToken(t, "secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New(),
		Role:   "SUPERADMIN",
	})

	claims, err := NewVerifier("secret").Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestVerifier_Verify_WrongSecret(t *testing.T) {
	tokenString := signToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New(),
	})

	_, err := NewVerifier("secret").Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifier_Verify_Expired(t *testing.T) {
	tokenString := signToken(t, "secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: uuid.New(),
	})

	_, err := NewVerifier("secret").Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifier_Verify_MissingUserID(t *testing.T) {
	tokenString := signToken(t, "secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := NewVerifier("secret").Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifier_Verify_Garbage(t *testing.T) {
	_, err := NewVerifier("secret").Verify("not-a-jwt")
	assert.Error(t, err)
}
