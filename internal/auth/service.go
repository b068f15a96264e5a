// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/staffdesk/internal/core"
)

const notifyTimeout = 30 * time.Second

// UserInfo is the account snapshot the lifecycle service works with.
type UserInfo struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	IsActive       bool
	AuthString     string
	Role           string
	SalaryPerMonth float64
}

type CreateUserParams struct {
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	SalaryPerMonth float64
}

// UserProvider is the credential store surface the lifecycle service needs.
// Implemented by the user service.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	GetByAuthString(ctx context.Context, authString string) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, params CreateUserParams) (*UserInfo, error)
	Activate(ctx context.Context, id string) error
	SetAuthString(ctx context.Context, id, authString string) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
}

// Notifier delivers activation and password-reset messages. It is an
// external collaborator; the service never fails an operation on a
// notification error.
type Notifier interface {
	SendActivation(ctx context.Context, email, userID string) error
	SendPasswordReset(ctx context.Context, email, authString string) error
}

type Service struct {
	users    UserProvider
	tokens   *TokenManager
	notifier Notifier
	logger   *slog.Logger
}

func NewService(
	users UserProvider,
	tokens *TokenManager,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}

// Register creates a Pending account and dispatches the activation mail.
// The existence check and the insert are two separate store calls with no
// wrapping transaction; concurrent registrations for the same email can
// race (the unique index then decides, and the loser still reports the
// duplicate-email outcome).
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserInfo, error) {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("register: %w", core.ErrDuplicateEmail)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, CreateUserParams{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordHash:   passwordHash,
		SalaryPerMonth: req.SalaryPerMonth,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateEmail) {
			return nil, fmt.Errorf("register: %w", core.ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.dispatch(ctx, "activation", func(sendCtx context.Context) error {
		return s.notifier.SendActivation(sendCtx, user.Email, user.ID)
	})

	return user, nil
}

// Activate flips the account to Active. Idempotent for existing users.
func (s *Service) Activate(ctx context.Context, id string) error {
	if err := s.users.Activate(ctx, id); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	return nil
}

// Login verifies credentials in the fixed order existence, activation,
// password, and issues a session token on success.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", fmt.Errorf("login: %w", core.ErrNotFound)
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return "", fmt.Errorf("login: %w", core.ErrNotActive)
	}

	valid, err := core.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return "", fmt.Errorf("login: %w", core.ErrBadCredentials)
	}

	token, err := s.tokens.CreateSessionToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("create session token: %w", err)
	}

	return token, nil
}

// ForgotPassword generates a fresh auth string, replacing any pending one,
// and dispatches the reset mail.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("forgot password: %w", core.ErrNotFound)
		}
		return fmt.Errorf("get user: %w", err)
	}

	authString, err := core.GenerateAuthString()
	if err != nil {
		return fmt.Errorf("generate auth string: %w", err)
	}

	if err := s.users.SetAuthString(ctx, user.ID, authString); err != nil {
		return fmt.Errorf("store auth string: %w", err)
	}

	s.dispatch(ctx, "password reset", func(sendCtx context.Context) error {
		return s.notifier.SendPasswordReset(sendCtx, user.Email, authString)
	})

	return nil
}

// VerifyAuthString resolves a pending auth string to the account's email.
func (s *Service) VerifyAuthString(
	ctx context.Context,
	authString string,
) (string, error) {
	if authString == "" {
		return "", fmt.Errorf("verify auth string: %w", core.ErrInvalidCode)
	}

	user, err := s.users.GetByAuthString(ctx, authString)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", fmt.Errorf(
				"verify auth string: %w",
				core.ErrInvalidCode,
			)
		}
		return "", fmt.Errorf("get user by auth string: %w", err)
	}

	return user.Email, nil
}

// ResetPassword replaces the stored hash and clears any pending auth
// string, invalidating the one-shot reset token.
func (s *Service) ResetPassword(
	ctx context.Context,
	email, password string,
) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("reset password: %w", core.ErrNotFound)
		}
		return fmt.Errorf("get user: %w", err)
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.ResetPassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	return nil
}

// dispatch runs a notification on a detached goroutine. The response never
// waits on delivery and a send failure only logs.
func (s *Service) dispatch(
	ctx context.Context,
	kind string,
	send func(context.Context) error,
) {
	sendCtx := context.WithoutCancel(ctx)

	go func() {
		sendCtx, cancel := context.WithTimeout(sendCtx, notifyTimeout)
		defer cancel()

		if err := send(sendCtx); err != nil {
			s.logger.Warn("notification failed",
				"kind", kind,
				"error", err,
			)
		}
	}()
}
