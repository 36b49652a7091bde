package port

import (
	"context"

	"github.com/Randle9000/phresh-api/internal/core/domain"
)

// UserRepository exposes persistence behavior for users. The auth core only
// ever reads through GetByUsername; mutation is the HTTP layer's concern.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash, salt string) error
	Deactivate(ctx context.Context, id string) error
}

// UserLookup is the narrow read-only capability the authentication resolver
// consumes.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
