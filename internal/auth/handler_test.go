// AngelaMos | 2026
// handler_test.go

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/staffdesk/internal/config"
	"github.com/carterperez-dev/staffdesk/internal/middleware"
)

// storeActivation adapts the fake store to the activation gate.
type storeActivation struct {
	store *fakeUserStore
}

func (a storeActivation) ActiveByID(
	ctx context.Context,
	id string,
) (bool, error) {
	u, err := a.store.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}

func (a storeActivation) ActiveByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	u, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}

type testEnv struct {
	router   *chi.Mux
	store    *fakeUserStore
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	svc, store, notifier := newTestService(t)

	cookies := NewSessionCookies(config.SessionConfig{
		CookieName: "token",
		Expiry:     time.Hour,
	})
	handler := NewHandler(svc, cookies)

	authenticator := middleware.Authenticator(svc.tokens, "token")
	activatedOnly := middleware.RequireActivated(storeActivation{store})

	router := chi.NewRouter()
	router.Route("/v1/users", func(r chi.Router) {
		handler.RegisterRoutes(r, authenticator, activatedOnly)
	})

	return &testEnv{router: router, store: store, notifier: notifier}
}

func (e *testEnv) do(
	t *testing.T,
	method, path string,
	body any,
	cookies ...*http.Cookie,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"email":          email,
		"password":       "s3cret-passw0rd",
		"salaryPerMonth": 5200,
	}
}

func sessionCookie(
	t *testing.T,
	rec *httptest.ResponseRecorder,
) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestAccountLifecycle(t *testing.T) {
	env := newTestEnv(t)

	// Register.
	rec := env.do(t, http.MethodPost, "/v1/users", registerBody("ada@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := decodeBody(t, rec)
	assert.Contains(t, payload["message"], "check your email")

	userPayload, ok := payload["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", userPayload["email"])
	assert.NotContains(t, userPayload, "password")
	assert.NotContains(t, userPayload, "passwordHash")

	userID, ok := userPayload["id"].(string)
	require.True(t, ok)

	// Re-register reports the duplicate without a failure status.
	rec = env.do(t, http.MethodPost, "/v1/users", registerBody("ada@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"This email is already registered.",
		decodeBody(t, rec)["message"],
	)

	// Login is gated until activation.
	login := map[string]any{
		"email":    "ada@example.com",
		"password": "s3cret-passw0rd",
	}
	rec = env.do(t, http.MethodPost, "/v1/users/login", login)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(
		t,
		"This account is not yet active.",
		decodeBody(t, rec)["message"],
	)

	// Activate.
	rec = env.do(
		t,
		http.MethodGet,
		fmt.Sprintf("/v1/users/activate/%s", userID),
		nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"User account has been activated.",
		decodeBody(t, rec)["message"],
	)

	// Wrong password after activation.
	rec = env.do(t, http.MethodPost, "/v1/users/login", map[string]any{
		"email":    "ada@example.com",
		"password": "wrong-passw0rd",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Incorrect password.", decodeBody(t, rec)["message"])

	// Login sets the session cookie.
	rec = env.do(t, http.MethodPost, "/v1/users/login", login)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// Logout clears it.
	rec = env.do(t, http.MethodGet, "/v1/users/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"Successfully logged out.",
		decodeBody(t, rec)["message"],
	)

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestActivateUnknownUserID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/users/activate/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found.", decodeBody(t, rec)["message"])
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/users/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "s3cret-passw0rd",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found.", decodeBody(t, rec)["message"])
}

func TestLogoutWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/users/logout", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied", decodeBody(t, rec)["message"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/users", map[string]any{
		"firstName":      "Ada",
		"lastName":       "Lovelace",
		"email":          "not-an-email",
		"password":       "short",
		"salaryPerMonth": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasswordResetEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/users", registerBody("ada@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := decodeBody(t, rec)["user"].(map[string]any)["id"].(string)
	waitForMail(t, env.notifier.activations)

	rec = env.do(
		t,
		http.MethodGet,
		fmt.Sprintf("/v1/users/activate/%s", userID),
		nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)

	// Request a reset.
	rec = env.do(t, http.MethodPost, "/v1/users/forgot", map[string]any{
		"email": "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"Password reset link sent to your email address.",
		decodeBody(t, rec)["message"],
	)

	reset := waitForMail(t, env.notifier.resets)

	// Verify the code.
	rec = env.do(
		t,
		http.MethodGet,
		fmt.Sprintf("/v1/users/verify/%s", reset.value),
		nil,
	)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	assert.Equal(
		t,
		"Authentication code verified successfully.",
		payload["message"],
	)
	assert.Equal(t, "ada@example.com", payload["email"])

	// Set the new password.
	rec = env.do(t, http.MethodPost, "/v1/users/reset", map[string]any{
		"email":    "ada@example.com",
		"password": "n3w-passw0rd!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(
		t,
		"Password reset successfully.",
		decodeBody(t, rec)["message"],
	)

	// The code is spent.
	rec = env.do(
		t,
		http.MethodGet,
		fmt.Sprintf("/v1/users/verify/%s", reset.value),
		nil,
	)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(
		t,
		"Invalid authentication code.",
		decodeBody(t, rec)["message"],
	)

	// Login with the new password works.
	rec = env.do(t, http.MethodPost, "/v1/users/login", map[string]any{
		"email":    "ada@example.com",
		"password": "n3w-passw0rd!",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestForgotPasswordUnknownEmailEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/users/forgot", map[string]any{
		"email": "nobody@example.com",
	})
	// The activation gate resolves the email first and reports the miss.
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found.", decodeBody(t, rec)["message"])
}
