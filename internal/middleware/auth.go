// AngelaMos | 2026
// auth.go

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/carterperez-dev/staffdesk/internal/core"
)

// maxPeekBytes bounds how much of a request body the activation gate will
// buffer while looking for an email field.
const maxPeekBytes = 1 << 20

type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, token string) (string, error)
}

// RoleResolver loads the stored role for a resolved user id.
type RoleResolver interface {
	RoleByID(ctx context.Context, id string) (string, error)
}

// ActivationChecker loads the activation flag for a user by id or email.
type ActivationChecker interface {
	ActiveByID(ctx context.Context, id string) (bool, error)
	ActiveByEmail(ctx context.Context, email string) (bool, error)
}

// Authenticator resolves the session credential into a user id on the
// request context. Each gate either passes control forward unchanged or
// terminates the request; gates never mutate state.
func Authenticator(
	verifier TokenVerifier,
	cookieName string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cookieName)

			if token == "" {
				core.Unauthorized(w, "Access denied")
				return
			}

			userID, err := verifier.VerifySessionToken(r.Context(), token)
			if err != nil {
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin loads the authenticated user and requires the admin role.
func RequireAdmin(roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				core.Unauthorized(w, "Access denied")
				return
			}

			role, err := roles.RoleByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.NotFound(w, "User not found.")
					return
				}
				core.InternalServerError(w, err)
				return
			}

			if role != "admin" {
				core.JSONError(
					w,
					core.ForbiddenError("insufficient permissions"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireActivated checks the activation flag for the resolved user id, or
// for the email carried in the JSON body on pre-auth routes such as login.
// When neither subject is present there is nothing to check and the gate
// passes control through.
func RequireActivated(
	accounts ActivationChecker,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := GetUserID(ctx); userID != "" {
				active, err := accounts.ActiveByID(ctx, userID)
				if !gateActive(w, active, err) {
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			email := peekEmail(r)
			if email == "" {
				next.ServeHTTP(w, r)
				return
			}

			active, err := accounts.ActiveByEmail(ctx, email)
			if !gateActive(w, active, err) {
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func gateActive(w http.ResponseWriter, active bool, err error) bool {
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User not found.")
			return false
		}
		core.InternalServerError(w, err)
		return false
	}

	if !active {
		core.JSONError(w, core.NotActiveError())
		return false
	}

	return true
}

// peekEmail reads the email field out of a JSON body and restores the body
// so the handler can decode it again.
func peekEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	//nolint:errcheck // original body is fully consumed or unusable either way
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	if err != nil {
		return ""
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	return payload.Email
}

// ExtractToken pulls the session credential from the named cookie, falling
// back to an Authorization bearer header.
func ExtractToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}
