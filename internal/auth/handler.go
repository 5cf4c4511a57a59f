package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	codec     *session.Codec
	secure    bool
	validator *validator.Validate
}

// NewHandler constructs a Handler instance. secure toggles the Secure cookie
// attribute and should follow the production flag.
func NewHandler(logger *slog.Logger, service *Service, codec *session.Codec, secure bool) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		codec:     codec,
		secure:    secure,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/api/auth/login", h.handleLogin)
	r.Post("/api/auth/logout", h.handleLogout)
	// Legacy alias kept for older clients.
	r.Post("/api/logout", h.handleLogout)
	r.Get("/api/session", h.handleSession)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	DepartmentID int64  `json:"departmentId,omitempty"`
}

type userResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	DepartmentID int64  `json:"departmentId,omitempty"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.BadRequest(w, "Malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondValidation(w, err)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}

	token, err := h.codec.Issue(user.Identity())
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}

	session.WriteCookie(w, token, h.secure)
	shared.RespondJSON(w, http.StatusOK, map[string]userResponse{"user": {
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
	}})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, h.secure)
	shared.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// handleSession is the introspection endpoint presentation layers use to
// branch UI by role. It is never the authorization source of truth for
// mutations; every mutating route re-checks policy.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		shared.RespondJSON(w, http.StatusUnauthorized, map[string]any{"session": nil})
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]sessionResponse{"session": {
		UserID:       sess.UserID,
		Email:        sess.Email,
		Role:         string(sess.Role),
		Name:         sess.Name,
		DepartmentID: sess.DepartmentID,
	}})
}
