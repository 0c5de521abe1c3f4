package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qbnb/marketplace-api/internal/api/metrics"
	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

// dateLayout is the wire format for booking dates. Dates mark nights, not
// instants, so no time-of-day component is accepted.
const dateLayout = "2006-01-02"

type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// Create books a listing for the authenticated user over [start_date,
// end_date). The total cost is debited from the renter's balance.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details, dates as YYYY-MM-DD"
// @Success      201   {object}  domain.Booking
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	renter, err := userID(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end_date must be YYYY-MM-DD")
	}

	booking, err := h.bookings.CreateBooking(c.Request().Context(), ports.CreateBookingInput{
		ListingID: req.ListingID,
		UserID:    renter,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.ValidationRejectionsTotal.WithLabelValues("create_booking").Inc()
		}
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, booking)
}

// ListForListing returns a listing's bookings ordered by start date.
//
// @Summary      List bookings of a listing
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  map[string]string
// @Router       /v1/listings/{id}/bookings [get]
func (h *BookingHandler) ListForListing(c echo.Context) error {
	if _, err := userID(c); err != nil {
		return err
	}

	bookings, err := h.bookings.ListByListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListMine returns the authenticated user's bookings.
//
// @Summary      List own bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Failure      401  {object}  map[string]string
// @Router       /v1/bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	renter, err := userID(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListByUser(c.Request().Context(), renter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}
