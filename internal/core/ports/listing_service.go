package ports

import (
	"context"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

// ListingLookupMode selects how UpdateListing resolves its target.
type ListingLookupMode int

const (
	// LookupByListingID resolves the listing directly by its id.
	LookupByListingID ListingLookupMode = iota
	// LookupByOwnerID resolves the owner's first listing. Kept for callers
	// that edit "my listing" without holding its id.
	LookupByOwnerID
)

// ListingRef is a tagged reference to a listing, replacing sentinel-valued
// ids at the call boundary.
type ListingRef struct {
	Mode ListingLookupMode
	ID   string
}

// ByListingID references a listing by its own id.
func ByListingID(id string) ListingRef {
	return ListingRef{Mode: LookupByListingID, ID: id}
}

// ByOwnerID references the first listing owned by the given user.
func ByOwnerID(ownerID string) ListingRef {
	return ListingRef{Mode: LookupByOwnerID, ID: ownerID}
}

// CreateListingInput carries the raw field values for a new listing.
type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	OwnerID     string
}

// UpdateListingInput carries the raw field values for a listing update.
// OwnerID must match the stored owner of the resolved listing.
type UpdateListingInput struct {
	Ref            ListingRef
	NewTitle       string
	NewDescription string
	NewPrice       float64
	OwnerID        string
}

// ListingService defines the listing lifecycle operations and query helpers.
type ListingService interface {
	CreateListing(ctx context.Context, input CreateListingInput) (*domain.Listing, error)
	UpdateListing(ctx context.Context, input UpdateListingInput) (*domain.Listing, error)
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	GetListingByTitle(ctx context.Context, title string) (*domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error)
}
