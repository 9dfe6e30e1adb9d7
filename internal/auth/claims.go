package auth

import (
	"errors"
	"time"
)

// Token verification failures. Callers map them to distinct 401 responses.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims are the claims carried by an access token, whatever its format.
type AccessClaims struct {
	UserID    int64
	Pseudo    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer issues and verifies bearer tokens carrying the user id.
type TokenIssuer interface {
	Issue(userID int64, pseudo string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*AccessClaims, error)
	Duration() time.Duration
}
