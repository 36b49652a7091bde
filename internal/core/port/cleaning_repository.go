package port

import (
	"context"

	"github.com/Randle9000/phresh-api/internal/core/domain"
)

// CleaningRepository exposes persistence behavior for cleaning listings.
type CleaningRepository interface {
	Create(ctx context.Context, cleaning domain.Cleaning) error
	GetByID(ctx context.Context, id string) (*domain.Cleaning, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Cleaning, error)
	ListAll(ctx context.Context) ([]domain.Cleaning, error)
	Update(ctx context.Context, cleaning domain.Cleaning) error
	Delete(ctx context.Context, id string) error
}
