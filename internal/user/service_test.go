// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/staffdesk/internal/auth"
	"github.com/carterperez-dev/staffdesk/internal/core"
)

// fakeRepository is an in-memory Repository.
type fakeRepository struct {
	mu    sync.Mutex
	users map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[string]*User)}
}

func (r *fakeRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return core.ErrDuplicateEmail
		}
	}

	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepository) GetByEmail(
	_ context.Context,
	email string,
) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepository) GetByAuthString(
	_ context.Context,
	authString string,
) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.AuthString != "" && u.AuthString == authString {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepository) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[u.ID]
	if !ok {
		return core.ErrNotFound
	}

	for _, other := range r.users {
		if other.ID != u.ID && other.Email == u.Email {
			return core.ErrDuplicateEmail
		}
	}

	u.UpdatedAt = time.Now()
	copied := *u
	copied.CreatedAt = existing.CreatedAt
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeRepository) Activate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.IsActive = true
	return nil
}

func (r *fakeRepository) SetAuthString(
	_ context.Context,
	id, authString string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.AuthString = authString
	return nil
}

func (r *fakeRepository) ResetPassword(
	_ context.Context,
	id, passwordHash string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.AuthString = ""
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepository) List(_ context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func createTestUser(t *testing.T, svc *Service, email string) *auth.UserInfo {
	t.Helper()

	info, err := svc.Create(context.Background(), auth.CreateUserParams{
		FirstName:      "Grace",
		LastName:       "Hopper",
		Email:          email,
		PasswordHash:   "$argon2id$stub",
		SalaryPerMonth: 6100,
	})
	require.NoError(t, err)
	return info
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newFakeRepository())

	info := createTestUser(t, svc, "grace@example.com")

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, RoleEmployee, info.Role)
	assert.False(t, info.IsActive)
	assert.Empty(t, info.AuthString)
}

func TestUpdateProfileMergesNonEmptyFields(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	info := createTestUser(t, svc, "grace@example.com")

	updated, err := svc.UpdateProfile(ctx, info.ID, UpdateProfileRequest{
		FirstName: "Amazing",
	})
	require.NoError(t, err)

	assert.Equal(t, "Amazing", updated.FirstName)
	assert.Equal(t, "Hopper", updated.LastName)
	assert.Equal(t, "grace@example.com", updated.Email)
	assert.InEpsilon(t, 6100.0, updated.SalaryPerMonth, 0.001)

	updated, err = svc.UpdateProfile(ctx, info.ID, UpdateProfileRequest{
		Email:          "hopper@example.com",
		SalaryPerMonth: 7000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Amazing", updated.FirstName)
	assert.Equal(t, "hopper@example.com", updated.Email)
	assert.InEpsilon(t, 7000.0, updated.SalaryPerMonth, 0.001)
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	createTestUser(t, svc, "grace@example.com")
	other := createTestUser(t, svc, "other@example.com")

	_, err := svc.UpdateProfile(ctx, other.ID, UpdateProfileRequest{
		Email: "grace@example.com",
	})
	assert.True(t, errors.Is(err, core.ErrDuplicateEmail))
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.UpdateProfile(
		context.Background(),
		"missing",
		UpdateProfileRequest{FirstName: "X"},
	)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestDeleteAccount(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	info := createTestUser(t, svc, "grace@example.com")

	require.NoError(t, svc.DeleteAccount(ctx, info.ID))

	_, err := svc.GetProfile(ctx, info.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))

	err = svc.DeleteAccount(ctx, info.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestActivationAndRoleLookups(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	info := createTestUser(t, svc, "grace@example.com")

	active, err := svc.ActiveByID(ctx, info.ID)
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, svc.Activate(ctx, info.ID))

	active, err = svc.ActiveByEmail(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.True(t, active)

	role, err := svc.RoleByID(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, role)

	repo.users[info.ID].Role = RoleAdmin
	role, err = svc.RoleByID(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}

func TestListUsers(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()

	createTestUser(t, svc, "grace@example.com")
	createTestUser(t, svc, "ada@example.com")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
