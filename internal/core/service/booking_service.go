package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

// BookingService implements booking creation and lookups.
type BookingService struct {
	bookings ports.BookingRepository
	listings ports.ListingRepository
	users    ports.UserRepository
	audit    ports.AuditSink
	logger   zerolog.Logger
	now      func() time.Time
}

func NewBookingService(
	bookings ports.BookingRepository,
	listings ports.ListingRepository,
	users ports.UserRepository,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		listings: listings,
		users:    users,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateBooking reserves a listing for the half-open [StartDate, EndDate)
// range. The range must not overlap any existing booking of the listing and
// the renter's balance must cover nights times the nightly price. The debit
// is conditional at the storage layer, so the balance can never go negative.
func (s *BookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	listing, err := s.listings.FindByID(ctx, in.ListingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("create booking: lookup listing: %w", err)
	}

	if !in.StartDate.Before(in.EndDate) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.bookings.FindByListing(ctx, in.ListingID)
	if err != nil {
		return nil, fmt.Errorf("create booking: lookup bookings: %w", err)
	}
	for _, b := range existing {
		if b.Overlaps(in.StartDate, in.EndDate) {
			return nil, domain.ErrBookingConflict
		}
	}

	cost := domain.BookingCost(listing.Price, in.StartDate, in.EndDate)
	amount := domain.DebitAmount(cost)

	if err := s.users.DebitBalance(ctx, in.UserID, amount); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: debit: %w", err)
	}

	now := s.now().UTC()
	booking := &domain.Booking{
		ListingID: in.ListingID,
		UserID:    in.UserID,
		OwnerID:   listing.OwnerID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Price:     cost,
		CreatedAt: now,
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		// Compensate the debit so a failed insert leaves no partial state.
		if creditErr := s.users.CreditBalance(ctx, in.UserID, amount); creditErr != nil {
			s.logger.Error().Err(creditErr).Str("user_id", in.UserID).Int("amount", amount).
				Msg("failed to refund debit after booking insert failure")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.audit.Enqueue(ports.AuditEvent{
		EntityID:  created.ID,
		Action:    ports.AuditBookingCreated,
		ActorID:   in.UserID,
		Timestamp: now,
	})
	s.logger.Info().
		Str("booking_id", created.ID).
		Str("listing_id", in.ListingID).
		Str("user_id", in.UserID).
		Float64("price", cost).
		Msg("booking created")

	return created, nil
}

func (s *BookingService) ListByListing(ctx context.Context, listingID string) ([]*domain.Booking, error) {
	return s.bookings.FindByListing(ctx, listingID)
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.bookings.FindByUser(ctx, userID)
}
