// AngelaMos | 2026
// handler_test.go

package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/staffdesk/internal/auth"
	"github.com/carterperez-dev/staffdesk/internal/config"
	"github.com/carterperez-dev/staffdesk/internal/middleware"
)

// asUser stubs the session gate, injecting a fixed subject.
func asUser(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func passThrough(next http.Handler) http.Handler {
	return next
}

func newProfileRouter(
	t *testing.T,
	svc *Service,
	userID string,
) *chi.Mux {
	t.Helper()

	cookies := auth.NewSessionCookies(config.SessionConfig{
		CookieName: "token",
		Expiry:     time.Hour,
	})
	handler := NewHandler(svc, cookies)

	router := chi.NewRouter()
	router.Route("/v1/users", func(r chi.Router) {
		handler.RegisterRoutes(r, asUser(userID), passThrough)
		handler.RegisterAdminRoutes(r, asUser(userID), passThrough)
	})
	return router
}

func doJSON(
	t *testing.T,
	router *chi.Mux,
	method, path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetProfile(t *testing.T) {
	svc := NewService(newFakeRepository())
	info := createTestUser(t, svc, "grace@example.com")
	router := newProfileRouter(t, svc, info.ID)

	rec := doJSON(t, router, http.MethodGet, "/v1/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, info.ID, payload["id"])
	assert.Equal(t, "grace@example.com", payload["email"])
	assert.NotContains(t, payload, "password")
	assert.NotContains(t, payload, "authString")
	assert.NotContains(t, payload, "isActive")
}

func TestGetProfileMissingUser(t *testing.T) {
	svc := NewService(newFakeRepository())
	router := newProfileRouter(t, svc, "dangling-id")

	rec := doJSON(t, router, http.MethodGet, "/v1/users", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	svc := NewService(newFakeRepository())
	info := createTestUser(t, svc, "grace@example.com")
	router := newProfileRouter(t, svc, info.ID)

	rec := doJSON(t, router, http.MethodPut, "/v1/users", map[string]any{
		"firstName": "Amazing",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload UpdateProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, "Profile updated successfully.", payload.Message)
	assert.Equal(t, "Amazing", payload.User.FirstName)
	assert.Equal(t, "Hopper", payload.User.LastName)
}

func TestUpdateProfileEndpointDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepository())
	createTestUser(t, svc, "grace@example.com")
	other := createTestUser(t, svc, "other@example.com")
	router := newProfileRouter(t, svc, other.ID)

	rec := doJSON(t, router, http.MethodPut, "/v1/users", map[string]any{
		"email": "grace@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	svc := NewService(newFakeRepository())
	info := createTestUser(t, svc, "grace@example.com")
	router := newProfileRouter(t, svc, info.ID)

	rec := doJSON(t, router, http.MethodDelete, "/v1/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "User deleted successfully.", payload["message"])

	// The session cookie is dropped along with the account.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	_, err := svc.GetProfile(context.Background(), info.ID)
	assert.Error(t, err)
}

func TestListUsersEndpoint(t *testing.T) {
	svc := NewService(newFakeRepository())
	admin := createTestUser(t, svc, "admin@example.com")
	createTestUser(t, svc, "grace@example.com")
	router := newProfileRouter(t, svc, admin.ID)

	rec := doJSON(t, router, http.MethodGet, "/v1/users/admin/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 2)

	// The listing returns full records, stored credential included.
	assert.Contains(t, payload[0], "password")
	assert.Contains(t, payload[0], "authString")
	assert.Contains(t, payload[0], "isActive")
}
