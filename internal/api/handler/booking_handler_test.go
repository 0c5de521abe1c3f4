package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

type stubBookingService struct {
	createFn        func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error)
	listByListingFn func(ctx context.Context, listingID string) ([]*domain.Booking, error)
	listByUserFn    func(ctx context.Context, userID string) ([]*domain.Booking, error)
}

func (s *stubBookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	return s.createFn(ctx, in)
}

func (s *stubBookingService) ListByListing(ctx context.Context, listingID string) ([]*domain.Booking, error) {
	return s.listByListingFn(ctx, listingID)
}

func (s *stubBookingService) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.listByUserFn(ctx, userID)
}

func newBookingContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")
	return c, rec
}

func TestBookingHandler_Create_Success(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			if in.ListingID != "listing_1" || in.UserID != "user_1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			want := time.Date(2022, time.December, 15, 0, 0, 0, 0, time.UTC)
			if !in.StartDate.Equal(want) {
				t.Fatalf("start date not parsed: %v", in.StartDate)
			}
			return &domain.Booking{ID: "booking_1", ListingID: in.ListingID, UserID: in.UserID}, nil
		},
	}
	h := NewBookingHandler(stub)

	c, rec := newBookingContext(t, `{"listing_id":"listing_1","start_date":"2022-12-15","end_date":"2022-12-20"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "booking_1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBookingHandler_Create_MissingFields(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newBookingContext(t, `{"listing_id":"listing_1"}`)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBookingHandler_Create_BadDateFormat(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newBookingContext(t, `{"listing_id":"listing_1","start_date":"15/12/2022","end_date":"2022-12-20"}`)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBookingHandler_Create_ConflictPassthrough(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			return nil, domain.ErrBookingConflict
		},
	}
	h := NewBookingHandler(stub)

	c, _ := newBookingContext(t, `{"listing_id":"listing_1","start_date":"2022-12-15","end_date":"2022-12-20"}`)
	err := h.Create(c)
	if !errors.Is(err, domain.ErrBookingConflict) {
		t.Fatalf("expected ErrBookingConflict, got %v", err)
	}
}

func TestBookingHandler_Create_Unauthenticated(t *testing.T) {
	stub := &stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewBookingHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
