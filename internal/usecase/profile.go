package usecase

import (
	"context"

	"github.com/Randle9000/phresh-api/internal/core/domain"
	"github.com/Randle9000/phresh-api/internal/core/port"
)

// ProfileService coordinates profile reads and owner updates.
type ProfileService struct {
	profiles port.ProfileRepository
}

// NewProfileService constructs a ProfileService instance.
func NewProfileService(profiles port.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetByUsername fetches the public profile for the named user.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return s.profiles.GetByUsername(ctx, username)
}

// GetOwn fetches the calling user's profile.
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// UpdateOwn applies the non-nil fields of update to the calling user's
// profile and returns the refreshed record.
func (s *ProfileService) UpdateOwn(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	return s.profiles.Update(ctx, userID, update)
}
