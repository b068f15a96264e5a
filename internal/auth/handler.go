// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/staffdesk/internal/core"
)

type Handler struct {
	service   *Service
	cookies   *SessionCookies
	validator *validator.Validate
}

func NewHandler(service *Service, cookies *SessionCookies) *Handler {
	return &Handler{
		service:   service,
		cookies:   cookies,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes wires the account-lifecycle endpoints onto the /users
// subtree. Gates per route: login/forgot/reset check activation by the
// email in the body; logout requires an authenticated, active session.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, activatedOnly func(http.Handler) http.Handler,
) {
	r.Post("/", h.Register)
	r.Get("/activate/{userID}", h.Activate)

	r.With(activatedOnly).Post("/login", h.Login)
	r.With(authenticator, activatedOnly).Get("/logout", h.Logout)
	r.With(activatedOnly).Post("/forgot", h.ForgotPassword)
	r.With(activatedOnly).Get("/verify/{authString}", h.VerifyAuthString)
	r.With(activatedOnly).Post("/reset", h.ResetPassword)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		// Informational outcome, not a hard error: the caller learns the
		// email is taken without a failure status.
		if errors.Is(err, core.ErrDuplicateEmail) {
			core.Message(
				w,
				http.StatusOK,
				"This email is already registered.",
			)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, RegisterResponse{
		Message: "Account created successfully. " +
			"Please check your email to activate your account.",
		User: toUserResponse(user),
	})
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.service.Activate(r.Context(), userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User not found.")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "User account has been activated.")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "User not found.")
		case errors.Is(err, core.ErrNotActive):
			core.JSONError(w, core.NotActiveError())
		case errors.Is(err, core.ErrBadCredentials):
			core.JSONError(w, core.BadCredentialsError())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	h.cookies.Set(w, token)
	core.Message(w, http.StatusOK, "Logged in successfully.")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	core.Message(w, http.StatusOK, "Successfully logged out.")
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "No account found with this email address.")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(
		w,
		http.StatusOK,
		"Password reset link sent to your email address.",
	)
}

func (h *Handler) VerifyAuthString(w http.ResponseWriter, r *http.Request) {
	authString := chi.URLParam(r, "authString")

	email, err := h.service.VerifyAuthString(r.Context(), authString)
	if err != nil {
		if errors.Is(err, core.ErrInvalidCode) {
			core.JSONError(w, core.InvalidCodeError())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, VerifyResponse{
		Message: "Authentication code verified successfully.",
		Email:   email,
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.ResetPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "User with this email does not exist.")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "Password reset successfully.")
}
