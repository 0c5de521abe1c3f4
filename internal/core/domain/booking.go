package domain

import (
	"math"
	"time"
)

// Booking is a renter's reservation of a listing over a half-open
// [StartDate, EndDate) range. Bookings are immutable once created.
type Booking struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	OwnerID   string    `json:"owner_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// Overlaps reports whether the booking's range shares at least one night with
// [start, end). Ranges that merely touch (one ends where the other starts)
// do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && start.Before(b.EndDate)
}

// Nights returns the number of nights in the half-open [start, end) range.
func Nights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// BookingCost is the total price of renting a listing for [start, end).
func BookingCost(nightly float64, start, end time.Time) float64 {
	return nightly * float64(Nights(start, end))
}

// DebitAmount converts a booking cost to the whole-dollar amount taken from
// the renter's balance. Fractional costs round up so affordability is never
// overstated.
func DebitAmount(cost float64) int {
	return int(math.Ceil(cost))
}
