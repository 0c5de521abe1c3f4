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

// ListingService implements listing creation, updates, and lookups.
type ListingService struct {
	listings ports.ListingRepository
	users    ports.UserRepository
	audit    ports.AuditSink
	logger   zerolog.Logger
	now      func() time.Time
}

func NewListingService(
	listings ports.ListingRepository,
	users ports.UserRepository,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *ListingService {
	return &ListingService{
		listings: listings,
		users:    users,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateListing validates and persists a new listing. The title must be
// globally unique and the owner must exist. Nothing is persisted on any
// rejection.
func (s *ListingService) CreateListing(ctx context.Context, in ports.CreateListingInput) (*domain.Listing, error) {
	now := s.now().UTC()

	if !domain.AlphanumericCheck(in.Title) ||
		!domain.LengthCheck(in.Title, 0, 80) ||
		!domain.LengthCheck(in.Description, 20, 2000) ||
		!domain.DescriptionLengthCheck(in.Description, in.Title) ||
		!domain.RangeCheck(in.Price, domain.MinListingPrice, domain.MaxListingPrice) ||
		!domain.DateCheck(now, domain.MinListingDate, domain.MaxListingDate) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.users.FindByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("create listing: lookup owner: %w", err)
	}

	if _, err := s.listings.FindByTitle(ctx, in.Title); err == nil {
		return nil, domain.ErrTitleTaken
	} else if !errors.Is(err, domain.ErrListingNotFound) {
		return nil, fmt.Errorf("create listing: lookup title: %w", err)
	}

	listing := &domain.Listing{
		Title:            in.Title,
		Description:      in.Description,
		Price:            in.Price,
		OwnerID:          in.OwnerID,
		LastModifiedDate: now,
		CreatedAt:        now,
	}

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		// Unique index on the title is the backstop for concurrent creates.
		if errors.Is(err, domain.ErrTitleTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create listing")
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.audit.Enqueue(ports.AuditEvent{
		EntityID:  created.ID,
		Action:    ports.AuditListingCreated,
		ActorID:   in.OwnerID,
		Timestamp: now,
	})
	s.logger.Info().Str("listing_id", created.ID).Str("owner_id", in.OwnerID).Msg("listing created")

	return created, nil
}

// UpdateListing overwrites title, description, and price of the referenced
// listing. The price can only stay or increase, never decrease, and the
// caller must be the stored owner.
func (s *ListingService) UpdateListing(ctx context.Context, in ports.UpdateListingInput) (*domain.Listing, error) {
	listing, err := s.resolve(ctx, in.Ref)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	if !domain.AlphanumericCheck(in.NewTitle) ||
		!domain.LengthCheck(in.NewTitle, 0, 80) ||
		!domain.LengthCheck(in.NewDescription, 20, 2000) ||
		!domain.DescriptionLengthCheck(in.NewDescription, in.NewTitle) ||
		!domain.RangeCheck(in.NewPrice, listing.Price, domain.MaxListingPrice) {
		return nil, domain.ErrInvalidInput
	}

	// The listing may keep its own title; any other listing's title is a
	// conflict.
	if other, err := s.listings.FindByTitle(ctx, in.NewTitle); err == nil {
		if other.ID != listing.ID {
			return nil, domain.ErrTitleTaken
		}
	} else if !errors.Is(err, domain.ErrListingNotFound) {
		return nil, fmt.Errorf("update listing: lookup title: %w", err)
	}

	if listing.OwnerID != in.OwnerID {
		return nil, domain.ErrForbidden
	}

	if !domain.DateCheck(now, domain.MinListingDate, domain.MaxListingDate) {
		return nil, domain.ErrInvalidInput
	}

	listing.Title = in.NewTitle
	listing.Description = in.NewDescription
	listing.Price = in.NewPrice
	listing.LastModifiedDate = now

	if err := s.listings.Update(ctx, listing); err != nil {
		if errors.Is(err, domain.ErrTitleTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}

	s.audit.Enqueue(ports.AuditEvent{
		EntityID:  listing.ID,
		Action:    ports.AuditListingUpdated,
		ActorID:   in.OwnerID,
		Timestamp: now,
	})
	s.logger.Info().Str("listing_id", listing.ID).Msg("listing updated")

	return listing, nil
}

func (s *ListingService) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.FindByID(ctx, id)
}

func (s *ListingService) GetListingByTitle(ctx context.Context, title string) (*domain.Listing, error) {
	return s.listings.FindByTitle(ctx, title)
}

func (s *ListingService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	return s.listings.FindByOwner(ctx, ownerID)
}

// resolve maps a tagged ListingRef to a stored listing.
func (s *ListingService) resolve(ctx context.Context, ref ports.ListingRef) (*domain.Listing, error) {
	switch ref.Mode {
	case ports.LookupByOwnerID:
		owned, err := s.listings.FindByOwner(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve listing: %w", err)
		}
		if len(owned) == 0 {
			return nil, domain.ErrListingNotFound
		}
		return owned[0], nil
	default:
		listing, err := s.listings.FindByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, domain.ErrListingNotFound) {
				return nil, domain.ErrListingNotFound
			}
			return nil, fmt.Errorf("resolve listing: %w", err)
		}
		return listing, nil
	}
}
