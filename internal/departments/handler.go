package departments

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for department views.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers department routes. The static students route is
// mounted before the wildcard so chi matches it first.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/hub/department", h.handleOwn)
	r.Get("/api/hub/department/students/{studentID}", h.handleStudentRecord)
	r.Get("/api/hub/department/{departmentID}", h.handleByID)
}

func (h *Handler) handleOwn(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Own(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, overview)
}

func (h *Handler) handleByID(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.ParseInt(chi.URLParam(r, "departmentID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid department ID")
		return
	}
	overview, err := h.service.ByID(r.Context(), session.FromContext(r.Context()), departmentID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, overview)
}

func (h *Handler) handleStudentRecord(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(chi.URLParam(r, "studentID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid student ID")
		return
	}
	record, err := h.service.StudentRecord(r.Context(), session.FromContext(r.Context()), studentID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, record)
}
