package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for the principal's admin views.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers admin routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/hub/admin/overview", h.handleOverview)
	r.Get("/api/hub/admin/students", h.handleStudents)
	r.Get("/api/hub/admin/faculty", h.handleFaculty)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, overview)
}

func (h *Handler) handleStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.Students(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if students == nil {
		students = []StudentRow{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]StudentRow{"students": students})
}

func (h *Handler) handleFaculty(w http.ResponseWriter, r *http.Request) {
	faculty, err := h.service.Faculty(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if faculty == nil {
		faculty = []FacultyRow{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]FacultyRow{"faculty": faculty})
}
