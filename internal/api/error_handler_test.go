package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusUnprocessableEntity},
		{"wrapped invalid input", fmt.Errorf("price out of range: %w", domain.ErrInvalidInput), http.StatusUnprocessableEntity},
		{"malformed credentials", domain.ErrMalformedCredentials, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"listing not found", domain.ErrListingNotFound, http.StatusNotFound},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"username taken", domain.ErrUsernameTaken, http.StatusConflict},
		{"title taken", domain.ErrTitleTaken, http.StatusConflict},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"booking conflict", domain.ErrBookingConflict, http.StatusConflict},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"echo http error", echo.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestHTTPErrorHandler_UnknownErrorHidesCause(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(errors.New("mongo: connection reset"), c)

	if got := rec.Body.String(); got != `{"error":"internal server error"}`+"\n" {
		t.Fatalf("internal detail leaked: %s", got)
	}
}
