package domain

import "time"

// Review score bounds and maximum text length.
const (
	MinReviewScore   = 1
	MaxReviewScore   = 5
	MaxReviewTextLen = 200
)

// Review is a renter's feedback on a listing.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ListingID  string    `json:"listing_id"`
	ReviewText string    `json:"review_text"`
	Score      int       `json:"review_score"`
	Date       time.Time `json:"date"`
}
