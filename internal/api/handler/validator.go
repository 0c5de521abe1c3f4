package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator adapts go-playground/validator to the echo.Validator
// interface so handlers can call c.Validate on bound request structs.
type requestValidator struct {
	validate *validator.Validate
}

func NewValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	var b strings.Builder
	for i, fe := range ve {
		if i > 0 {
			b.WriteString("; ")
		}
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&b, "%s is required", field)
		case "email":
			fmt.Fprintf(&b, "%s must be a valid email", field)
		case "min", "gte":
			fmt.Fprintf(&b, "%s must be at least %s", field, fe.Param())
		case "max", "lte":
			fmt.Fprintf(&b, "%s must be at most %s", field, fe.Param())
		default:
			fmt.Fprintf(&b, "%s failed validation (%s)", field, fe.Tag())
		}
	}
	return errors.New(b.String())
}
