package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

func newReviewFixture(t *testing.T) (*ReviewService, *domain.User, *domain.Listing) {
	t.Helper()
	ctx := context.Background()

	users := newStubUserRepo()
	listings := newStubListingRepo()
	reviews := newStubReviewRepo()

	user, err := users.Create(ctx, &domain.User{Username: "renter", Email: "renter@test.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	listing, err := listings.Create(ctx, &domain.Listing{Title: "Reviewed Listing", OwnerID: user.ID})
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	svc := NewReviewService(reviews, listings, users, &recordingAuditSink{}, discardLogger)
	return svc, user, listing
}

func TestReviewService_Create(t *testing.T) {
	svc, user, listing := newReviewFixture(t)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, ports.CreateReviewInput{
		UserID:    user.ID,
		ListingID: listing.ID,
		Text:      "Great stay, would book again.",
		Score:     5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ID == "" {
		t.Error("created review must have an id")
	}
	if review.Date.IsZero() {
		t.Error("review date must be set")
	}

	got, err := svc.ListByListing(ctx, listing.ID)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected 1 review for listing, got %d (err %v)", len(got), err)
	}
}

func TestReviewService_Create_Rejections(t *testing.T) {
	svc, user, listing := newReviewFixture(t)
	ctx := context.Background()

	valid := ports.CreateReviewInput{
		UserID:    user.ID,
		ListingID: listing.ID,
		Text:      "Fine.",
		Score:     3,
	}

	cases := []struct {
		name   string
		mutate func(in ports.CreateReviewInput) ports.CreateReviewInput
		want   error
	}{
		{"empty text", func(in ports.CreateReviewInput) ports.CreateReviewInput {
			in.Text = ""
			return in
		}, domain.ErrInvalidInput},
		{"text over 200 chars", func(in ports.CreateReviewInput) ports.CreateReviewInput {
			in.Text = strings.Repeat("x", 201)
			return in
		}, domain.ErrInvalidInput},
		{"score below 1", func(in ports.CreateReviewInput) ports.CreateReviewInput {
			in.Score = 0
			return in
		}, domain.ErrInvalidInput},
		{"score above 5", func(in ports.CreateReviewInput) ports.CreateReviewInput {
			in.Score = 6
			return in
		}, domain.ErrInvalidInput},
		{"unknown user", func(in ports.CreateReviewInput) ports.CreateReviewInput {
			in.UserID = "user_missing"
			return in
		}, domain.ErrUserNotFound},
		{"unknown listing", func(in ports.CreateReviewInput) ports.CreateReviewInput {
			in.ListingID = "listing_missing"
			return in
		}, domain.ErrListingNotFound},
	}
	for _, tc := range cases {
		if _, err := svc.CreateReview(ctx, tc.mutate(valid)); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
