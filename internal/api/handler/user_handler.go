package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qbnb/marketplace-api/internal/api/metrics"
	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type updateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	BillingAddress string `json:"billing_address"`
	PostalCode     string `json:"postal_code"`
	Password       string `json:"password"`
}

type updateUserResponse struct {
	User          *domain.User `json:"user"`
	ReloginNeeded bool         `json:"relogin_needed"`
}

// Me returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update overwrites the authenticated user's profile. Changing the email
// revokes every outstanding session, signalled by relogin_needed.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "New profile values"
// @Success      200   {object}  updateUserResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/users/me [put]
func (h *UserHandler) Update(c echo.Context) error {
	if _, err := userID(c); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.accounts.UpdateUser(c.Request().Context(), ports.UpdateUserInput{
		CurrentName:   username(c),
		NewName:       req.Username,
		NewEmail:      req.Email,
		NewAddress:    req.BillingAddress,
		NewPostalCode: req.PostalCode,
		NewPassword:   req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.ValidationRejectionsTotal.WithLabelValues("update_user").Inc()
		}
		return err
	}

	if result.EmailChanged {
		metrics.SessionRevocationsTotal.Inc()
	}
	return c.JSON(http.StatusOK, updateUserResponse{
		User:          result.User,
		ReloginNeeded: result.EmailChanged,
	})
}
