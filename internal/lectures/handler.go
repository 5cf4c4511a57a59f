package lectures

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for schedules, lectures and attendance.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers lecture routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/hub/schedule", h.handleSchedule)
	r.Post("/api/hub/lectures", h.handleCreate)
	r.Get("/api/hub/lectures/{lectureID}", h.handleDetail)
	r.Post("/api/hub/lectures/{lectureID}/attendance", h.handleRecordAttendance)
	r.Get("/api/hub/attendance", h.handleOwnAttendance)
	r.Get("/api/hub/dashboard/upcoming-lectures", h.handleUpcoming)
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	lectures, err := h.service.Schedule(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if lectures == nil {
		lectures = []Lecture{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Lecture{"lectures": lectures})
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	lectures, err := h.service.Upcoming(r.Context(), session.FromContext(r.Context()), 3)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if lectures == nil {
		lectures = []Lecture{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Lecture{"lectures": lectures})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		shared.BadRequest(w, "Malformed request body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		shared.RespondValidation(w, err)
		return
	}

	id, err := h.service.Create(r.Context(), session.FromContext(r.Context()), input)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	lectureID, err := strconv.ParseInt(chi.URLParam(r, "lectureID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid lecture ID")
		return
	}
	detail, err := h.service.Detail(r.Context(), session.FromContext(r.Context()), lectureID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if detail.Students == nil {
		detail.Students = []RosterStudent{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string]*Detail{"lecture": detail})
}

type attendanceRequest struct {
	Attendance []Mark `json:"attendance" validate:"required,min=1,dive"`
}

func (h *Handler) handleRecordAttendance(w http.ResponseWriter, r *http.Request) {
	lectureID, err := strconv.ParseInt(chi.URLParam(r, "lectureID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid lecture ID")
		return
	}
	var req attendanceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.BadRequest(w, "Malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondValidation(w, err)
		return
	}

	if _, err := h.service.RecordAttendance(r.Context(), session.FromContext(r.Context()), lectureID, req.Attendance); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, map[string]string{"message": "Attendance saved successfully"})
}

func (h *Handler) handleOwnAttendance(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.OwnAttendance(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if records == nil {
		records = []AttendanceRecord{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]AttendanceRecord{"attendance": records})
}
