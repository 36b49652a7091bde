package port

import (
	"context"

	"github.com/Randle9000/phresh-api/internal/core/domain"
)

// ProfileRepository exposes persistence behavior for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
}
