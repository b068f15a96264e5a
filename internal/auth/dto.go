// AngelaMos | 2026
// dto.go

package auth

type RegisterRequest struct {
	FirstName      string  `json:"firstName"      validate:"required,min=1,max=100"`
	LastName       string  `json:"lastName"       validate:"required,min=1,max=100"`
	Email          string  `json:"email"          validate:"required,email,max=255"`
	Password       string  `json:"password"       validate:"required,min=8,max=128"`
	SalaryPerMonth float64 `json:"salaryPerMonth" validate:"required,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// UserResponse is the sanitized view of an account: no password hash,
// activation flag, or pending auth string.
type UserResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	SalaryPerMonth float64 `json:"salaryPerMonth"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type VerifyResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		SalaryPerMonth: u.SalaryPerMonth,
	}
}
