package ports

import (
	"context"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	// Create inserts a new listing and returns it with its assigned ID.
	// A unique-index violation on the title surfaces as domain.ErrTitleTaken.
	Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	FindByTitle(ctx context.Context, title string) (*domain.Listing, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error)
	// Update overwrites title, description, price, and last modified date
	// as a single write.
	Update(ctx context.Context, listing *domain.Listing) error
}
