// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

// UpdateProfileRequest merges into the stored record; empty or zero fields
// are ignored, so a field cannot be blanked through this endpoint. Role is
// deliberately absent: it is immutable via public profile update.
type UpdateProfileRequest struct {
	FirstName      string  `json:"firstName"      validate:"omitempty,min=1,max=100"`
	LastName       string  `json:"lastName"       validate:"omitempty,min=1,max=100"`
	Email          string  `json:"email"          validate:"omitempty,email,max=255"`
	SalaryPerMonth float64 `json:"salaryPerMonth" validate:"omitempty,gt=0"`
}

func (r *UpdateProfileRequest) ApplyTo(u *User) {
	if r.FirstName != "" {
		u.FirstName = r.FirstName
	}
	if r.LastName != "" {
		u.LastName = r.LastName
	}
	if r.Email != "" {
		u.Email = r.Email
	}
	if r.SalaryPerMonth != 0 {
		u.SalaryPerMonth = r.SalaryPerMonth
	}
}

// ProfileResponse excludes the password hash, activation flag, and any
// pending auth string.
type ProfileResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	SalaryPerMonth float64 `json:"salaryPerMonth"`
}

type UpdateProfileResponse struct {
	Message string          `json:"message"`
	User    ProfileResponse `json:"user"`
}

// AdminUserResponse mirrors the full stored record, sensitive columns
// included. Known over-exposure of the admin listing; see DESIGN.md
// before changing.
type AdminUserResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"password"`
	IsActive       bool      `json:"isActive"`
	AuthString     string    `json:"authString"`
	Role           string    `json:"role"`
	SalaryPerMonth float64   `json:"salaryPerMonth"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		SalaryPerMonth: u.SalaryPerMonth,
	}
}

func ToAdminUserResponse(u *User) AdminUserResponse {
	return AdminUserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		IsActive:       u.IsActive,
		AuthString:     u.AuthString,
		Role:           u.Role,
		SalaryPerMonth: u.SalaryPerMonth,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToAdminUserResponseList(users []User) []AdminUserResponse {
	responses := make([]AdminUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToAdminUserResponse(&u))
	}
	return responses
}
