// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/staffdesk/internal/auth"
	"github.com/carterperez-dev/staffdesk/internal/core"
	"github.com/carterperez-dev/staffdesk/internal/middleware"
)

type Handler struct {
	service   *Service
	cookies   *auth.SessionCookies
	validator *validator.Validate
}

func NewHandler(service *Service, cookies *auth.SessionCookies) *Handler {
	return &Handler{
		service:   service,
		cookies:   cookies,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes wires the profile endpoints onto the /users subtree. All
// three operate on the session subject, never on a caller-supplied id.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, activatedOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator, activatedOnly)
		r.Get("/", h.GetProfile)
		r.Put("/", h.UpdateProfile)
		r.Delete("/", h.DeleteAccount)
	})
}

// RegisterAdminRoutes wires the role-gated listing endpoint.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.With(authenticator, adminOnly).Get("/admin/users", h.ListUsers)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "Access denied")
		return
	}

	u, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User not found.")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToProfileResponse(u))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "Access denied")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "User not found.")
		case errors.Is(err, core.ErrDuplicateEmail):
			core.JSONError(w, core.DuplicateEmailError())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, UpdateProfileResponse{
		Message: "Profile updated successfully.",
		User:    ToProfileResponse(u),
	})
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "Access denied")
		return
	}

	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User not found.")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	// The session token stays verifiable after deletion, so drop the
	// cookie; the activation gate rejects the dangling subject anyway.
	h.cookies.Clear(w)
	core.Message(w, http.StatusOK, "User deleted successfully.")
}

// ListUsers returns full stored records, password hash and auth string
// included; see the note on AdminUserResponse.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAdminUserResponseList(users))
}
