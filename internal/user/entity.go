// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is the sole persisted entity. AuthString is non-empty only while a
// password reset is pending; IsActive is false until the activation link
// is followed.
type User struct {
	ID             string    `db:"id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Email          string    `db:"email"`
	PasswordHash   string    `db:"password_hash"`
	IsActive       bool      `db:"is_active"`
	AuthString     string    `db:"auth_string"`
	Role           string    `db:"role"`
	SalaryPerMonth float64   `db:"salary_per_month"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
