package ports

import (
	"context"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

// BookingRepository defines persistence operations for bookings. Bookings are
// immutable once created, so no update method exists.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindByListing(ctx context.Context, listingID string) ([]*domain.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	FindByListing(ctx context.Context, listingID string) ([]*domain.Review, error)
}
