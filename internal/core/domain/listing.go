package domain

import "time"

// Listing price bounds, inclusive.
const (
	MinListingPrice = 10
	MaxListingPrice = 10000
)

// The last-modified date of a listing must fall strictly inside this window
// at the time of any create or update.
var (
	MinListingDate = time.Date(2021, time.January, 2, 0, 0, 0, 0, time.UTC)
	MaxListingDate = time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
)

// Listing is a bookable offering created by an owner. The title is the
// dedup key: no two listings may share one.
type Listing struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	OwnerID          string    `json:"owner_id"`
	LastModifiedDate time.Time `json:"last_modified_date"`
	CreatedAt        time.Time `json:"created_at"`
}
