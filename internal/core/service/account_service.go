package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/qbnb/marketplace-api/internal/core/domain"
	"github.com/qbnb/marketplace-api/internal/core/ports"
)

// SessionRevoker invalidates all outstanding session tokens of a user.
// Backed by Redis in production.
type SessionRevoker interface {
	Revoke(ctx context.Context, userID string, at time.Time) error
}

// AccountService implements registration, login, and profile updates.
type AccountService struct {
	users     ports.UserRepository
	sessions  SessionRevoker
	audit     ports.AuditSink
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAccountService(
	users ports.UserRepository,
	sessions SessionRevoker,
	audit ports.AuditSink,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{
		users:     users,
		sessions:  sessions,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates a new account after running the field checks in a fixed
// order. No state is persisted on any rejection.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	// Reject reused emails before anything else.
	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	// Only rejects when email AND password are both empty. The individual
	// format checks below catch a single empty field anyway.
	if !domain.NotEmpty(in.Email) && !domain.NotEmpty(in.Password) {
		return nil, domain.ErrInvalidInput
	}
	if !domain.EmailCheck(in.Email) ||
		!domain.PasswordCheck(in.Password) ||
		!domain.AlphanumericCheck(in.Name) ||
		!domain.LengthCheck(in.Name, 3, 20) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:       in.Name,
		Email:          in.Email,
		RealName:       in.RealName,
		PasswordHash:   string(hash),
		Balance:        domain.SignupBalance,
		BillingAddress: "",
		PostalCode:     "",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// Unique index is the backstop for concurrent registrations.
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.audit.Enqueue(ports.AuditEvent{
		EntityID:  created.ID,
		Action:    ports.AuditUserRegistered,
		ActorID:   created.ID,
		Timestamp: now,
	})
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return created, nil
}

// Login verifies credentials and returns a signed session token. A format
// failure on either credential is reported as ErrMalformedCredentials, which
// is distinct from well-formed but wrong credentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if !domain.EmailCheck(email) || !domain.PasswordCheck(password) {
		return "", nil, domain.ErrMalformedCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	return token, user, nil
}

// UpdateUser overwrites the profile of the account named by CurrentName.
// A user may keep their own current name or email (self-match exemption);
// anyone else's name or email is a conflict. When the email changes, all of
// the user's sessions are revoked so the caller must log in again.
func (s *AccountService) UpdateUser(ctx context.Context, in ports.UpdateUserInput) (*ports.UpdateUserResult, error) {
	user, err := s.users.FindByUsername(ctx, in.CurrentName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: lookup: %w", err)
	}

	if in.NewPostalCode != "" && !domain.PostalCodeCheck(in.NewPostalCode) {
		return nil, domain.ErrInvalidInput
	}
	if !domain.EmailCheck(in.NewEmail) ||
		!domain.AlphanumericCheck(in.NewName) ||
		!domain.LengthCheck(in.NewName, 3, 19) ||
		!domain.PasswordCheck(in.NewPassword) {
		return nil, domain.ErrInvalidInput
	}

	if other, err := s.users.FindByUsername(ctx, in.NewName); err == nil {
		if other.ID != user.ID {
			return nil, domain.ErrUsernameTaken
		}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("update user: lookup name: %w", err)
	}
	if other, err := s.users.FindByEmail(ctx, in.NewEmail); err == nil {
		if other.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("update user: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("update user: hash password: %w", err)
	}

	now := s.now().UTC()
	emailChanged := user.Email != in.NewEmail

	user.Username = in.NewName
	user.Email = in.NewEmail
	user.BillingAddress = in.NewAddress
	user.PostalCode = in.NewPostalCode
	user.PasswordHash = string(hash)
	user.UpdatedAt = now

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if emailChanged {
		if err := s.sessions.Revoke(ctx, user.ID, now); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to revoke sessions after email change")
		}
	}

	s.audit.Enqueue(ports.AuditEvent{
		EntityID:  user.ID,
		Action:    ports.AuditUserUpdated,
		ActorID:   user.ID,
		Timestamp: now,
	})
	s.logger.Info().Str("user_id", user.ID).Bool("email_changed", emailChanged).Msg("user updated")

	return &ports.UpdateUserResult{User: user, EmailChanged: emailChanged}, nil
}

func (s *AccountService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AccountService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
