package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qbnb/marketplace-api/internal/api/metrics"
	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	Text  string `json:"review_text"`
	Score int    `json:"review_score"`
}

// Create posts a review on a listing by the authenticated user.
//
// @Summary      Review a listing
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Listing id"
// @Param        body  body      createReviewRequest  true  "Review text and score"
// @Success      201   {object}  domain.Review
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/listings/{id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	reviewer, err := userID(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	review, err := h.reviews.CreateReview(c.Request().Context(), ports.CreateReviewInput{
		UserID:    reviewer,
		ListingID: c.Param("id"),
		Text:      req.Text,
		Score:     req.Score,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.ValidationRejectionsTotal.WithLabelValues("create_review").Inc()
		}
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// ListForListing returns a listing's reviews, newest first.
//
// @Summary      List reviews of a listing
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {array}   domain.Review
// @Router       /v1/listings/{id}/reviews [get]
func (h *ReviewHandler) ListForListing(c echo.Context) error {
	reviews, err := h.reviews.ListByListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
