package courses

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for courses.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers course routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/hub/courses", h.handleList)
	r.Get("/api/hub/courses/{courseID}", h.handleDetail)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		shared.RespondError(w, h.logger, shared.ErrUnauthorized)
		return
	}
	courses, err := h.service.ListForSession(r.Context(), sess)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if courses == nil {
		courses = []Course{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Course{"courses": courses})
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		shared.RespondError(w, h.logger, shared.ErrUnauthorized)
		return
	}
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid course ID")
		return
	}
	detail, err := h.service.Detail(r.Context(), sess, courseID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if detail.Students == nil {
		detail.Students = []RosterStudent{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string]*Detail{"course": detail})
}
