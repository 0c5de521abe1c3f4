package ports

import (
	"context"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// FindBy* methods return domain.ErrUserNotFound when no account matches.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned ID.
	// Unique-index violations surface as domain.ErrEmailTaken or
	// domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update overwrites every mutable field of the stored user.
	Update(ctx context.Context, user *domain.User) error
	// DebitBalance atomically subtracts amount from the user's balance,
	// failing with domain.ErrInsufficientFunds when the balance does not
	// cover it. The check and the write are a single storage operation.
	DebitBalance(ctx context.Context, id string, amount int) error
	// CreditBalance adds amount back; used to compensate a failed booking
	// insert after a successful debit.
	CreditBalance(ctx context.Context, id string, amount int) error
}
