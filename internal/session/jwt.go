package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alexnev/accountcore/internal/model"
)

// Claims is the wire shape of the session tokens issued by the outer
// session framework. Only the fields this core needs are declared.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

var _ model.SessionVerifier = (*Verifier)(nil)

// Verifier validates externally issued session tokens with a shared
// HMAC secret. It never issues tokens; session creation lives outside
// this service.
type Verifier struct {
	secretKey string
}

// NewVerifier creates a session verifier with the provided secret key.
func NewVerifier(secretKey string) *Verifier {
	return &Verifier{secretKey: secretKey}
}

// Verify parses and validates a session token and returns its claims.
func (v *Verifier) Verify(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(v.secretKey), nil
	})
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return model.SessionClaims{}, fmt.Errorf("session token is invalid")
	}
	if claims.UserID == uuid.Nil {
		return model.SessionClaims{}, fmt.Errorf("session token has no subject")
	}

	role := model.Role(claims.Role)
	if role != model.RoleAdmin {
		role = model.RoleUser
	}

	return model.SessionClaims{UserID: claims.UserID, Role: role}, nil
}
