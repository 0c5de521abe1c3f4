package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error // if set, Create returns this error
	updateErr error // if set, Update returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) DebitBalance(_ context.Context, id string, amount int) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	// Mirrors the conditional update the real Mongo repo performs.
	if u.Balance < amount {
		return domain.ErrInsufficientFunds
	}
	u.Balance -= amount
	return nil
}

func (r *stubUserRepo) CreditBalance(_ context.Context, id string, amount int) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Balance += amount
	return nil
}

type stubListingRepo struct {
	byID      map[string]*domain.Listing
	nextID    int
	createErr error
	updateErr error
}

func newStubListingRepo() *stubListingRepo {
	return &stubListingRepo{byID: make(map[string]*domain.Listing)}
}

func (r *stubListingRepo) Create(_ context.Context, l *domain.Listing) (*domain.Listing, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Title == l.Title {
			return nil, domain.ErrTitleTaken
		}
	}
	r.nextID++
	clone := *l
	clone.ID = fmt.Sprintf("listing_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubListingRepo) FindByTitle(_ context.Context, title string) (*domain.Listing, error) {
	for _, l := range r.byID {
		if l.Title == title {
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func (r *stubListingRepo) FindByOwner(_ context.Context, ownerID string) ([]*domain.Listing, error) {
	var owned []*domain.Listing
	for _, l := range r.byID {
		if l.OwnerID == ownerID {
			clone := *l
			owned = append(owned, &clone)
		}
	}
	return owned, nil
}

func (r *stubListingRepo) Update(_ context.Context, l *domain.Listing) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[l.ID]; !ok {
		return domain.ErrListingNotFound
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

type stubBookingRepo struct {
	byID      map[string]*domain.Booking
	nextID    int
	createErr error
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *b
	clone.ID = fmt.Sprintf("booking_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) FindByListing(_ context.Context, listingID string) ([]*domain.Booking, error) {
	var matched []*domain.Booking
	for _, b := range r.byID {
		if b.ListingID == listingID {
			clone := *b
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (r *stubBookingRepo) FindByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	var matched []*domain.Booking
	for _, b := range r.byID {
		if b.UserID == userID {
			clone := *b
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

type stubReviewRepo struct {
	byID   map[string]*domain.Review
	nextID int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byID: make(map[string]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	r.nextID++
	clone := *rv
	clone.ID = fmt.Sprintf("review_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) FindByListing(_ context.Context, listingID string) ([]*domain.Review, error) {
	var matched []*domain.Review
	for _, rv := range r.byID {
		if rv.ListingID == listingID {
			clone := *rv
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

// recordingAuditSink collects enqueued events for assertions.
type recordingAuditSink struct {
	events []ports.AuditEvent
}

func (a *recordingAuditSink) Enqueue(e ports.AuditEvent) {
	a.events = append(a.events, e)
}

// recordingRevoker collects session revocations for assertions.
type recordingRevoker struct {
	revoked []string
}

func (r *recordingRevoker) Revoke(_ context.Context, userID string, _ time.Time) error {
	r.revoked = append(r.revoked, userID)
	return nil
}

// insideWindow is a fixed instant within the listing date window, so date
// checks behave the same regardless of when the tests run.
var insideWindow = time.Date(2022, time.June, 1, 12, 0, 0, 0, time.UTC)
