package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failure kinds. These stay inside the security/usecase boundary;
// the auth service collapses them before they reach transport code.
var (
	// ErrMalformedToken indicates the token string cannot be parsed into the
	// expected structure or is missing a required claim.
	ErrMalformedToken = errors.New("token: malformed")
	// ErrInvalidSignature indicates the signature does not verify under the
	// supplied secret.
	ErrInvalidSignature = errors.New("token: invalid signature")
	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("token: expired")
	// ErrAudienceMismatch indicates the token was minted for a different audience.
	ErrAudienceMismatch = errors.New("token: audience mismatch")
)

// AccessTokenClaims augments the registered claim set with the username the
// authentication resolver keys on. The subject carries the user's email.
type AccessTokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ClaimsOptions configures construction of access token claims.
type ClaimsOptions struct {
	Issuer   string
	Audience string
	Subject  string
	Username string
	IssuedAt time.Time
	TTL      time.Duration
}

// NewAccessTokenClaims builds a fresh claim set. Expiry is issued-at plus TTL.
func NewAccessTokenClaims(opts ClaimsOptions) *AccessTokenClaims {
	now := opts.IssuedAt
	if now.IsZero() {
		now = time.Now().UTC()
	} else {
		now = now.UTC()
	}

	return &AccessTokenClaims{
		Username: opts.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    opts.Issuer,
			Audience:  jwt.ClaimStrings{opts.Audience},
			Subject:   opts.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.TTL)),
		},
	}
}

// TokenCodec encodes and decodes signed, expiring claims into a compact
// string. It holds no state and is safe for concurrent use; the signing
// secret is supplied per call so tests can exercise key mismatches.
type TokenCodec struct{}

// NewTokenCodec constructs a TokenCodec.
func NewTokenCodec() *TokenCodec {
	return &TokenCodec{}
}

// Encode serializes the claims and signs them with HMAC-SHA256 under secret.
func (tc *TokenCodec) Encode(claims *AccessTokenClaims, secret []byte) (string, error) {
	if claims == nil {
		return "", fmt.Errorf("token: claims required")
	}
	if len(secret) == 0 {
		return "", fmt.Errorf("token: secret required")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and claim semantics and returns the typed
// claim set. The signature is checked before any claim is interpreted, so a
// wrong secret always surfaces as ErrInvalidSignature.
func (tc *TokenCodec) Decode(token string, secret []byte, expectedAudience string) (*AccessTokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMalformedToken
	}

	claims := &AccessTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithAudience(expectedAudience), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrAudienceMismatch
		default:
			return nil, ErrMalformedToken
		}
	}

	if parsed == nil || !parsed.Valid {
		return nil, ErrInvalidSignature
	}
	if strings.TrimSpace(claims.Username) == "" || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrMalformedToken
	}

	return claims, nil
}
