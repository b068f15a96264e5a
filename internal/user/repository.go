// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/staffdesk/internal/core"
)

const uniqueViolationCode = "23505"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByAuthString(ctx context.Context, authString string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
	Activate(ctx context.Context, id string) error
	SetAuthString(ctx context.Context, id, authString string) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]User, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (
			id, first_name, last_name, email, password_hash,
			is_active, auth_string, role, salary_per_month
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.IsActive,
		u.AuthString,
		u.Role,
		u.SalaryPerMonth,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateEmail)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT * FROM users WHERE id = $1`

	var u User
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get user by id: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &u, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var u User
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

// GetByAuthString only matches pending reset codes; the empty string is
// every account's resting value and must never resolve.
func (r *repository) GetByAuthString(
	ctx context.Context,
	authString string,
) (*User, error) {
	query := `SELECT * FROM users WHERE auth_string = $1 AND auth_string <> ''`

	var u User
	if err := r.db.GetContext(ctx, &u, query, authString); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf(
				"get user by auth string: %w",
				core.ErrNotFound,
			)
		}
		return nil, fmt.Errorf("get user by auth string: %w", err)
	}

	return &u, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET first_name = $2,
		    last_name = $3,
		    email = $4,
		    salary_per_month = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.SalaryPerMonth,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update user: %w", core.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("update user: %w", core.ErrDuplicateEmail)
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

// Activate is idempotent: re-activating an active account succeeds.
func (r *repository) Activate(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET is_active = TRUE, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("activate user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("activate user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SetAuthString(
	ctx context.Context,
	id, authString string,
) error {
	query := `
		UPDATE users
		SET auth_string = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, authString)
	if err != nil {
		return fmt.Errorf("set auth string: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set auth string: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set auth string: %w", core.ErrNotFound)
	}

	return nil
}

// ResetPassword stores the new hash and clears the pending auth string in
// one statement, so a reset code cannot be replayed.
func (r *repository) ResetPassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, auth_string = '', updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("reset password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT * FROM users ORDER BY created_at`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
