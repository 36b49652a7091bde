package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/repository"
)

type memUserRepo struct {
	byID       map[string]domain.User
	byEmail    map[string]string
	byUsername map[string]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:       make(map[string]domain.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *memUserRepo) Create(_ context.Context, user domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := r.byUsername[user.Username]; ok {
		return repository.ErrDuplicate
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := r.byID[id]; ok {
		copied := user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if id, ok := r.byUsername[username]; ok {
		return r.GetByID(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if id, ok := r.byEmail[email]; ok {
		return r.GetByID(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, user domain.User) error {
	existing, ok := r.byID[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byEmail, existing.Email)
	delete(r.byUsername, existing.Username)
	user.PasswordHash = existing.PasswordHash
	user.Salt = existing.Salt
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	r.byUsername[user.Username] = user.ID
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash, salt string) error {
	user, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.Salt = salt
	r.byID[id] = user
	return nil
}

func (r *memUserRepo) Deactivate(_ context.Context, id string) error {
	user, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsActive = false
	r.byID[id] = user
	return nil
}

type memProfileRepo struct {
	byUserID map[string]domain.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{byUserID: make(map[string]domain.Profile)}
}

func (r *memProfileRepo) Create(_ context.Context, profile domain.Profile) error {
	if _, ok := r.byUserID[profile.UserID]; ok {
		return repository.ErrDuplicate
	}
	r.byUserID[profile.UserID] = profile
	return nil
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	if profile, ok := r.byUserID[userID]; ok {
		copied := profile
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memProfileRepo) GetByUsername(context.Context, string) (*domain.Profile, error) {
	return nil, errors.New("unexpected call")
}

func (r *memProfileRepo) Update(_ context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	profile, ok := r.byUserID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.FullName != nil {
		profile.FullName = update.FullName
	}
	if update.PhoneNumber != nil {
		profile.PhoneNumber = update.PhoneNumber
	}
	if update.Bio != nil {
		profile.Bio = update.Bio
	}
	if update.Image != nil {
		profile.Image = update.Image
	}
	r.byUserID[userID] = profile
	return &profile, nil
}

func newTestUserService() (*UserService, *memUserRepo, *memProfileRepo) {
	users := newMemUserRepo()
	profiles := newMemProfileRepo()
	auth := newTestAuthService(&stubUserLookup{})
	return NewUserService(users, profiles, auth), users, profiles
}

func TestUserServiceRegisterCreatesUserAndProfile(t *testing.T) {
	svc, users, profiles := newTestUserService()

	user, err := svc.Register(context.Background(), RegisterUserInput{
		Email:    "Lebron@James.IO",
		Username: "lebronjames",
		Password: "theracoon",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if user.Email != "lebron@james.io" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if !user.IsActive {
		t.Fatal("expected new account to be active")
	}
	if user.PasswordHash == "" || user.Salt == "" {
		t.Fatal("expected credential material to be stored")
	}
	if user.PasswordHash == "theracoon" {
		t.Fatal("password stored in plaintext")
	}

	if _, err := users.GetByUsername(context.Background(), "lebronjames"); err != nil {
		t.Fatalf("registered user not persisted: %v", err)
	}
	if _, err := profiles.GetByUserID(context.Background(), user.ID); err != nil {
		t.Fatalf("blank profile not created: %v", err)
	}
}

func TestUserServiceRegisterRejectsTakenIdentifiers(t *testing.T) {
	svc, _, _ := newTestUserService()

	if _, err := svc.Register(context.Background(), RegisterUserInput{
		Email:    "lebron@james.io",
		Username: "lebronjames",
		Password: "theracoon",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterUserInput{
		Email:    "lebron@james.io",
		Username: "someoneelse",
		Password: "theracoon",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterUserInput{
		Email:    "other@james.io",
		Username: "lebronjames",
		Password: "theracoon",
	}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserServiceRegisterRejectsInvalidUsername(t *testing.T) {
	svc, _, _ := newTestUserService()

	cases := []string{"ab", "bad name", "uh@oh"}
	for _, username := range cases {
		if _, err := svc.Register(context.Background(), RegisterUserInput{
			Email:    "lebron@james.io",
			Username: username,
			Password: "theracoon",
		}); !errors.Is(err, ErrInvalidUsername) {
			t.Fatalf("Register(%q): expected ErrInvalidUsername, got %v", username, err)
		}
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	svc, _, _ := newTestUserService()

	user, err := svc.Register(context.Background(), RegisterUserInput{
		Email:    "lebron@james.io",
		Username: "lebronjames",
		Password: "theracoon",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	got, token, err := svc.Authenticate(context.Background(), "lebron@james.io", "theracoon")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user %q", got.ID)
	}
	if token.Token == "" || token.TokenType != domain.TokenTypeBearer {
		t.Fatalf("unexpected token %+v", token)
	}

	if _, _, err := svc.Authenticate(context.Background(), "lebron@james.io", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	if _, _, err := svc.Authenticate(context.Background(), "nobody@james.io", "theracoon"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserServiceAuthenticateRejectsDeactivated(t *testing.T) {
	svc, _, _ := newTestUserService()

	user, err := svc.Register(context.Background(), RegisterUserInput{
		Email:    "lebron@james.io",
		Username: "lebronjames",
		Password: "theracoon",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.Deactivate(context.Background(), user.ID); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}

	if _, _, err := svc.Authenticate(context.Background(), "lebron@james.io", "theracoon"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for deactivated account, got %v", err)
	}
}

func TestUserServiceUpdateSelfPasswordRotatesSalt(t *testing.T) {
	svc, users, _ := newTestUserService()

	user, err := svc.Register(context.Background(), RegisterUserInput{
		Email:    "lebron@james.io",
		Username: "lebronjames",
		Password: "theracoon",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	newPassword := "an-even-better-secret"
	updated, err := svc.UpdateSelf(context.Background(), *user, UpdateUserInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("UpdateSelf returned error: %v", err)
	}

	if updated.Salt == user.Salt {
		t.Fatal("expected a fresh salt after password change")
	}

	stored, err := users.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.PasswordHash != updated.PasswordHash || stored.Salt != updated.Salt {
		t.Fatal("stored credential material does not match the update")
	}

	if _, _, err := svc.Authenticate(context.Background(), "lebron@james.io", newPassword); err != nil {
		t.Fatalf("Authenticate with new password failed: %v", err)
	}
	if _, _, err := svc.Authenticate(context.Background(), "lebron@james.io", "theracoon"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
}
