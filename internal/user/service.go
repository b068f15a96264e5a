// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/staffdesk/internal/auth"
	"github.com/carterperez-dev/staffdesk/internal/middleware"
)

// Service owns account storage. It backs the lifecycle service as its
// credential store and the access gates as role and activation lookups.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var (
	_ auth.UserProvider            = (*Service)(nil)
	_ middleware.RoleResolver      = (*Service)(nil)
	_ middleware.ActivationChecker = (*Service)(nil)
)

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) GetByAuthString(
	ctx context.Context,
	authString string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByAuthString(ctx, authString)
	if err != nil {
		return nil, err
	}
	return toUserInfo(u), nil
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, email)
}

// Create inserts a fresh account: inactive, employee role, no pending
// auth string.
func (s *Service) Create(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	u := &User{
		ID:             uuid.New().String(),
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Email:          params.Email,
		PasswordHash:   params.PasswordHash,
		IsActive:       false,
		AuthString:     "",
		Role:           RoleEmployee,
		SalaryPerMonth: params.SalaryPerMonth,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

func (s *Service) Activate(ctx context.Context, id string) error {
	return s.repo.Activate(ctx, id)
}

func (s *Service) SetAuthString(
	ctx context.Context,
	id, authString string,
) error {
	return s.repo.SetAuthString(ctx, id, authString)
}

func (s *Service) ResetPassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.ResetPassword(ctx, id, passwordHash)
}

func (s *Service) RoleByID(ctx context.Context, id string) (string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (s *Service) ActiveByID(ctx context.Context, id string) (bool, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}

func (s *Service) ActiveByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile loads the record, merges the non-empty request fields and
// writes it back. There is no field-level locking; the last writer wins.
func (s *Service) UpdateProfile(
	ctx context.Context,
	id string,
	req UpdateProfileRequest,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(u)

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return u, nil
}

// DeleteAccount removes the row outright. Nothing references users, so
// there is no cascade to worry about.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		IsActive:       u.IsActive,
		AuthString:     u.AuthString,
		Role:           u.Role,
		SalaryPerMonth: u.SalaryPerMonth,
	}
}
