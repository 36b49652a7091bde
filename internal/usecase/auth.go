package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/core/port"
	"github.com/Randle9000/phresh-api/internal/infra/config"
	"github.com/Randle9000/phresh-api/internal/infra/security"
	"github.com/Randle9000/phresh-api/internal/repository"
)

// TokenIssuer identifies tokens minted by this service.
const TokenIssuer = "phresh.io"

var (
	// ErrInvalidCredentials indicates the provided email or password are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword indicates the candidate password fails the password policy.
	ErrWeakPassword = errors.New("password does not meet the policy")
	// ErrInvalidPrincipal indicates token issuance was requested for a missing
	// or incomplete user. This is a caller defect, not a client failure.
	ErrInvalidPrincipal = errors.New("cannot issue token for invalid principal")
	// ErrUnauthorized indicates a bearer token could not be accepted. All token
	// failure modes collapse into this one error at the service boundary.
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthService owns credential material and bearer tokens. It validates and
// hashes passwords, verifies login attempts, and mints and reads access
// tokens. It never touches the database except through ResolveUser's lookup.
type AuthService struct {
	cfg    *config.AppConfig
	hasher *security.Hasher
	codec  *security.TokenCodec
	users  port.UserLookup
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(cfg *config.AppConfig, hasher *security.Hasher, codec *security.TokenCodec, users port.UserLookup) *AuthService {
	return &AuthService{
		cfg:    cfg,
		hasher: hasher,
		codec:  codec,
		users:  users,
	}
}

// RegisterCredentials validates a candidate password against the policy and,
// when accepted, produces a fresh salt and the password's digest under it.
// userInputs (email, username) are penalized by the strength estimator so a
// user cannot use their own identifier as a password.
func (s *AuthService) RegisterCredentials(password string, userInputs ...string) (domain.Credential, error) {
	validator := security.NewPasswordValidator(
		security.MinLengthRule(s.cfg.Password.MinLength),
		security.MaxLengthRule(s.cfg.Password.MaxLength),
		security.RequirePasswordStrengthRule(s.cfg.Password.MinStrengthScore, userInputs...),
	)

	if err := validator.Validate(password); err != nil {
		var policyErr *security.PasswordValidationError
		if errors.As(err, &policyErr) {
			return domain.Credential{}, fmt.Errorf("%w: %s", ErrWeakPassword, policyErr.Message)
		}
		return domain.Credential{}, fmt.Errorf("validate password: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return domain.Credential{}, fmt.Errorf("register credentials: %w", err)
	}

	hash, err := s.hasher.Hash(password, salt)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("register credentials: %w", err)
	}

	return domain.Credential{Salt: salt, PasswordHash: hash}, nil
}

// VerifyLogin checks an attempted password against stored credential material.
// A wrong password and malformed stored material are indistinguishable to the
// caller; both return ErrInvalidCredentials.
func (s *AuthService) VerifyLogin(password string, cred domain.Credential) error {
	ok, err := s.hasher.Verify(password, cred.Salt, cred.PasswordHash)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueAccessToken mints a signed bearer token for the given user. Calling it
// with a nil user or one missing a username is a programming error and fails
// with ErrInvalidPrincipal before any encoding happens.
func (s *AuthService) IssueAccessToken(user *domain.User) (domain.AccessToken, error) {
	if user == nil || strings.TrimSpace(user.Username) == "" {
		return domain.AccessToken{}, ErrInvalidPrincipal
	}

	ttl := s.cfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	claims := security.NewAccessTokenClaims(security.ClaimsOptions{
		Issuer:   TokenIssuer,
		Audience: s.cfg.JWT.Audience,
		Subject:  user.Email,
		Username: user.Username,
		TTL:      ttl,
	})

	signed, err := s.codec.Encode(claims, []byte(s.cfg.JWT.Secret))
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("issue access token: %w", err)
	}

	return domain.AccessToken{Token: signed, TokenType: domain.TokenTypeBearer}, nil
}

// ExtractUsername reads the username out of a bearer token. Every decode
// failure, whether malformed, forged, expired, or minted for another
// audience, collapses into ErrUnauthorized so callers cannot leak why a
// token was rejected.
func (s *AuthService) ExtractUsername(token string) (string, error) {
	claims, err := s.codec.Decode(token, []byte(s.cfg.JWT.Secret), s.cfg.JWT.Audience)
	if err != nil {
		return "", ErrUnauthorized
	}
	return claims.Username, nil
}

// ResolveUser turns a bearer token into the active user it names. Unknown
// usernames and deactivated accounts are rejected the same way an invalid
// token is.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.ExtractUsername(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUnauthorized
	}

	return user, nil
}
