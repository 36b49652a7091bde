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
)

var (
	// ErrForbidden indicates the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCleaning indicates the listing fields fail validation.
	ErrInvalidCleaning = errors.New("invalid cleaning")
)

// CreateCleaningInput carries the fields required to publish a listing.
type CreateCleaningInput struct {
	Name         string
	Description  *string
	Price        float64
	CleaningType domain.CleaningType
}

// CleaningService coordinates listing lifecycle flows. Updates and deletes
// are owner-only.
type CleaningService struct {
	cleanings port.CleaningRepository
}

// NewCleaningService constructs a CleaningService instance.
func NewCleaningService(cleanings port.CleaningRepository) *CleaningService {
	return &CleaningService{cleanings: cleanings}
}

// Create publishes a new listing owned by ownerID.
func (s *CleaningService) Create(ctx context.Context, ownerID string, input CreateCleaningInput) (*domain.Cleaning, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCleaning)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidCleaning)
	}

	cleaningType := input.CleaningType
	if cleaningType == "" {
		cleaningType = domain.DefaultCleaningType
	}
	if !domain.ValidCleaningType(cleaningType) {
		return nil, fmt.Errorf("%w: unknown cleaning type %q", ErrInvalidCleaning, cleaningType)
	}

	now := time.Now().UTC()
	cleaning := domain.Cleaning{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  input.Description,
		Price:        input.Price,
		CleaningType: cleaningType,
		OwnerID:      ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.cleanings.Create(ctx, cleaning); err != nil {
		return nil, err
	}

	return &cleaning, nil
}

// GetByID fetches a single listing.
func (s *CleaningService) GetByID(ctx context.Context, id string) (*domain.Cleaning, error) {
	return s.cleanings.GetByID(ctx, id)
}

// ListByOwner returns the listings owned by the given user.
func (s *CleaningService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Cleaning, error) {
	return s.cleanings.ListByOwner(ctx, ownerID)
}

// Feed returns every published listing, newest first.
func (s *CleaningService) Feed(ctx context.Context) ([]domain.Cleaning, error) {
	return s.cleanings.ListAll(ctx)
}

// Update applies the non-nil fields of update to the listing. Only the owner
// may update; anyone else gets ErrForbidden.
func (s *CleaningService) Update(ctx context.Context, callerID, id string, update domain.CleaningUpdate) (*domain.Cleaning, error) {
	cleaning, err := s.cleanings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cleaning.OwnerID != callerID {
		return nil, ErrForbidden
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidCleaning)
		}
		cleaning.Name = name
	}
	if update.Description != nil {
		cleaning.Description = update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidCleaning)
		}
		cleaning.Price = *update.Price
	}
	if update.CleaningType != nil {
		if !domain.ValidCleaningType(*update.CleaningType) {
			return nil, fmt.Errorf("%w: unknown cleaning type %q", ErrInvalidCleaning, *update.CleaningType)
		}
		cleaning.CleaningType = *update.CleaningType
	}

	cleaning.UpdatedAt = time.Now().UTC()

	if err := s.cleanings.Update(ctx, *cleaning); err != nil {
		return nil, err
	}

	return cleaning, nil
}

// Delete removes a listing. Only the owner may delete.
func (s *CleaningService) Delete(ctx context.Context, callerID, id string) error {
	cleaning, err := s.cleanings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if cleaning.OwnerID != callerID {
		return ErrForbidden
	}

	return s.cleanings.Delete(ctx, id)
}
