package domain

import "time"

// SignupBalance is credited to every account at registration time.
const SignupBalance = 100

// User models a marketplace account. The same account can own listings and
// book other users' listings.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	RealName       string    `json:"real_name,omitempty"`
	PasswordHash   string    `json:"-"`
	Balance        int       `json:"balance"`
	BillingAddress string    `json:"billing_address"`
	PostalCode     string    `json:"postal_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
