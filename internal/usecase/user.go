package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/core/port"
	"github.com/Randle9000/phresh-api/internal/repository"
)

var (
	// ErrEmailTaken indicates another account already uses the email address.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrUsernameTaken indicates another account already uses the username.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrInvalidUsername indicates the username fails the username policy.
	ErrInvalidUsername = errors.New("invalid username")
)

// RegisterUserInput carries the fields required to create an account.
type RegisterUserInput struct {
	Email    string
	Username string
	Password string
}

// UpdateUserInput carries the self-service updatable fields. Nil fields are
// left untouched.
type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
}

// UserService coordinates account lifecycle flows. Every new account gets a
// blank profile in the same transaction scope.
type UserService struct {
	users    port.UserRepository
	profiles port.ProfileRepository
	auth     *AuthService
}

// NewUserService constructs a UserService instance.
func NewUserService(users port.UserRepository, profiles port.ProfileRepository, auth *AuthService) *UserService {
	return &UserService{
		users:    users,
		profiles: profiles,
		auth:     auth,
	}
}

// Register creates a new account and its blank profile, then returns the
// stored user.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if err := domain.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUsername, err.Error())
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	cred, err := s.auth.RegisterCredentials(input.Password, email, username)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		IsActive:     true,
		PasswordHash: cred.PasswordHash,
		Salt:         cred.Salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	profile := domain.Profile{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return &user, nil
}

// Authenticate verifies an email and password pair and mints an access token
// for the matching account. Unknown emails, wrong passwords, and deactivated
// accounts all answer with ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, domain.AccessToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.AccessToken{}, ErrInvalidCredentials
		}
		return nil, domain.AccessToken{}, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.AccessToken{}, ErrInvalidCredentials
	}

	if err := s.auth.VerifyLogin(password, user.Credential()); err != nil {
		return nil, domain.AccessToken{}, err
	}

	token, err := s.auth.IssueAccessToken(user)
	if err != nil {
		return nil, domain.AccessToken{}, err
	}

	return user, token, nil
}

// GetByID fetches a user by identifier.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateSelf applies self-service changes to the calling user's account. A
// password change re-registers credentials, producing a fresh salt.
func (s *UserService) UpdateSelf(ctx context.Context, user domain.User, input UpdateUserInput) (*domain.User, error) {
	changed := false

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("check email: %w", err)
			}
			user.Email = email
			changed = true
		}
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username != user.Username {
			if err := domain.ValidateUsername(username); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidUsername, err.Error())
			}
			if _, err := s.users.GetByUsername(ctx, username); err == nil {
				return nil, ErrUsernameTaken
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("check username: %w", err)
			}
			user.Username = username
			changed = true
		}
	}

	if changed {
		user.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
	}

	if input.Password != nil {
		cred, err := s.auth.RegisterCredentials(*input.Password, user.Email, user.Username)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdatePassword(ctx, user.ID, cred.PasswordHash, cred.Salt); err != nil {
			return nil, err
		}
		user.PasswordHash = cred.PasswordHash
		user.Salt = cred.Salt
	}

	return &user, nil
}

// Deactivate disables the user's account. Existing tokens stop resolving on
// their next use.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.users.Deactivate(ctx, id)
}
