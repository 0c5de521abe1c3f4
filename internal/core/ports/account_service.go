package ports

import (
	"context"

	"github.com/qbnb/marketplace-api/internal/core/domain"
)

// RegisterInput carries the raw field values for a registration attempt.
type RegisterInput struct {
	Name     string
	Email    string
	RealName string
	Password string
}

// UpdateUserInput carries the raw field values for a profile update. The
// account is looked up by CurrentName; every field of the stored user is
// overwritten on acceptance, even if unchanged.
type UpdateUserInput struct {
	CurrentName    string
	NewName        string
	NewEmail       string
	NewAddress     string
	NewPostalCode  string
	NewPassword    string
}

// UpdateUserResult is returned after a successful profile update.
// EmailChanged tells the caller the user's sessions were revoked and a fresh
// login is required.
type UpdateUserResult struct {
	User         *domain.User
	EmailChanged bool
}

// AccountService defines the account lifecycle operations.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed session token and the matching user. A format
	// failure on either credential yields domain.ErrMalformedCredentials;
	// well-formed but wrong credentials yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*UpdateUserResult, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}
