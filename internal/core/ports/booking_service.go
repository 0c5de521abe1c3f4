package ports

import (
	"context"
	"time"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

// CreateBookingInput carries the raw field values for a booking attempt.
// Dates are interpreted as a half-open [StartDate, EndDate) range.
type CreateBookingInput struct {
	ListingID string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}

// BookingService defines the booking lifecycle operation and query helpers.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListByListing(ctx context.Context, listingID string) ([]*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
}

// CreateReviewInput carries the raw field values for a new review.
type CreateReviewInput struct {
	UserID    string
	ListingID string
	Text      string
	Score     int
}

// ReviewService defines the review operations.
type ReviewService interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	ListByListing(ctx context.Context, listingID string) ([]*domain.Review, error)
}
