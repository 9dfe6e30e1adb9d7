package auth

import (
	"fmt"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/cocktailapp/cocktail-server/internal/id"
)

const (
	tokenIssuer   = "cocktail-server"
	tokenAudience = "cocktail-client"
)

// PasetoIssuer issues PASETO v4.local access tokens.
type PasetoIssuer struct {
	symmetricKey paseto.V4SymmetricKey
	duration     time.Duration
	now          func() time.Time
}

// NewPasetoIssuer creates an issuer from a 32-byte symmetric key.
func NewPasetoIssuer(key []byte, duration time.Duration) (*PasetoIssuer, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &PasetoIssuer{symmetricKey: symmetricKey, duration: duration, now: time.Now}, nil
}

// Issue creates an encrypted token for the user.
func (p *PasetoIssuer) Issue(userID int64, pseudo string) (string, time.Time, error) {
	now := p.now()
	expiresAt := now.Add(p.duration)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(strconv.FormatInt(userID, 10))
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expiresAt)

	tokenID, err := id.Generate("tok")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	//nolint:errcheck // Set only fails on values that cannot be marshaled
	_ = token.Set("pseudo", pseudo)

	return token.V4Encrypt(p.symmetricKey, nil), expiresAt, nil
}

// Verify decrypts the token and checks issuer, audience and lifetime.
// Expired tokens return ErrTokenExpired, anything else ErrTokenInvalid.
func (p *PasetoIssuer) Verify(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(p.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, fmt.Errorf("%w: missing expiration", ErrTokenInvalid)
	}
	if !p.now().Before(expiresAt) {
		return nil, ErrTokenExpired
	}

	subject, err := token.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q is not a user id", ErrTokenInvalid, subject)
	}

	claims := &AccessClaims{UserID: userID, ExpiresAt: expiresAt}
	claims.Pseudo, _ = token.GetString("pseudo")
	claims.TokenID, _ = token.GetJti()
	claims.IssuedAt, _ = token.GetIssuedAt()

	return claims, nil
}

// Duration returns the configured token lifetime.
func (p *PasetoIssuer) Duration() time.Duration {
	return p.duration
}
