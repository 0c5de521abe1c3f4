package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qbnb/marketplace-api/internal/api/metrics"
	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

type ListingHandler struct {
	listings ports.ListingService
}

func NewListingHandler(listings ports.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

type createListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type updateListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Create publishes a new listing owned by the authenticated user.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  domain.Listing
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	owner, err := userID(c)
	if err != nil {
		return err
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	listing, err := h.listings.CreateListing(c.Request().Context(), ports.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		OwnerID:     owner,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.ValidationRejectionsTotal.WithLabelValues("create_listing").Inc()
		}
		return err
	}

	metrics.ListingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, listing)
}

// Get returns a single listing by id.
//
// @Summary      Get a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  map[string]string
// @Router       /v1/listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.listings.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// List returns listings. With ?title= it looks up the one listing carrying
// that exact title; otherwise it returns the authenticated user's listings.
//
// @Summary      List listings
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        title  query     string  false  "Exact title to look up"
// @Success      200    {array}   domain.Listing
// @Failure      404    {object}  map[string]string
// @Router       /v1/listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if title := c.QueryParam("title"); title != "" {
		listing, err := h.listings.GetListingByTitle(ctx, title)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, []*domain.Listing{listing})
	}

	owner, err := userID(c)
	if err != nil {
		return err
	}
	listings, err := h.listings.ListByOwner(ctx, owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Update modifies a listing's title, description, or price. Only the owner
// may update, and the price may only be raised.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Listing id"
// @Param        body  body      updateListingRequest  true  "New listing values"
// @Success      200   {object}  domain.Listing
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	owner, err := userID(c)
	if err != nil {
		return err
	}

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	listing, err := h.listings.UpdateListing(c.Request().Context(), ports.UpdateListingInput{
		Ref:            ports.ByListingID(c.Param("id")),
		NewTitle:       req.Title,
		NewDescription: req.Description,
		NewPrice:       req.Price,
		OwnerID:        owner,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.ValidationRejectionsTotal.WithLabelValues("update_listing").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, listing)
}
