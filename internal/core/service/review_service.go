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

// ReviewService implements review creation and lookups.
type ReviewService struct {
	reviews  ports.ReviewRepository
	listings ports.ListingRepository
	users    ports.UserRepository
	audit    ports.AuditSink
	logger   zerolog.Logger
	now      func() time.Time
}

func NewReviewService(
	reviews ports.ReviewRepository,
	listings ports.ListingRepository,
	users ports.UserRepository,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		listings: listings,
		users:    users,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateReview persists a review of a listing. The text must be non-empty
// and at most 200 characters, the score within [1, 5], and both the author
// and the listing must exist.
func (s *ReviewService) CreateReview(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	if !domain.NotEmpty(in.Text) ||
		!domain.LengthCheck(in.Text, 1, domain.MaxReviewTextLen) ||
		in.Score < domain.MinReviewScore || in.Score > domain.MaxReviewScore {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("create review: lookup user: %w", err)
	}
	if _, err := s.listings.FindByID(ctx, in.ListingID); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("create review: lookup listing: %w", err)
	}

	now := s.now().UTC()
	review := &domain.Review{
		UserID:     in.UserID,
		ListingID:  in.ListingID,
		ReviewText: in.Text,
		Score:      in.Score,
		Date:       now,
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.audit.Enqueue(ports.AuditEvent{
		EntityID:  created.ID,
		Action:    ports.AuditReviewCreated,
		ActorID:   in.UserID,
		Timestamp: now,
	})
	s.logger.Info().Str("review_id", created.ID).Str("listing_id", in.ListingID).Msg("review created")

	return created, nil
}

func (s *ReviewService) ListByListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	return s.reviews.FindByListing(ctx, listingID)
}
