package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cocktailapp/cocktail-server/internal/id"
)

type jwtClaims struct {
	Pseudo string `json:"pseudo,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer issues HS256 JSON Web Tokens for clients that cannot handle PASETO.
type JWTIssuer struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewJWTIssuer creates an issuer signing with the shared secret.
func NewJWTIssuer(secret string, duration time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &JWTIssuer{secret: []byte(secret), duration: duration, now: time.Now}, nil
}

// Issue signs a token whose subject is the user id.
func (j *JWTIssuer) Issue(userID int64, pseudo string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.duration)

	tokenID, err := id.Generate("tok")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}

	claims := jwtClaims{
		Pseudo: pseudo,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        tokenID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, issuer, audience and expiry.
func (j *JWTIssuer) Verify(tokenString string) (*AccessClaims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q is not a user id", ErrTokenInvalid, claims.Subject)
	}

	out := &AccessClaims{UserID: userID, Pseudo: claims.Pseudo, TokenID: claims.ID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Duration returns the configured token lifetime.
func (j *JWTIssuer) Duration() time.Duration {
	return j.duration
}
