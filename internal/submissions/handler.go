package submissions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for submissions and grades.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers submission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/hub/submissions", h.handleListOwn)
	r.Post("/api/hub/submissions", h.handleSubmit)
	r.Put("/api/hub/submissions/{submissionID}", h.handleGrade)
	r.Get("/api/hub/grades", h.handleGrades)
	r.Get("/api/hub/assignments/{assignmentID}/submissions", h.handleListForAssignment)
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListOwn(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []Submission{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Submission{"submissions": list})
}

func (h *Handler) handleGrades(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Grades(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []Submission{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Submission{"submissions": list})
}

type submitRequest struct {
	AssignmentID int64  `json:"assignmentId" validate:"required"`
	FileURL      string `json:"fileUrl" validate:"required,uri"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondValidation(w, err)
		return
	}
	sub, err := h.service.Submit(r.Context(), session.FromContext(r.Context()), req.AssignmentID, req.FileURL)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, map[string]*Submission{"submission": sub})
}

type gradeRequest struct {
	Grade *int `json:"grade" validate:"required,min=0,max=100"`
}

func (h *Handler) handleGrade(w http.ResponseWriter, r *http.Request) {
	submissionID, err := strconv.ParseInt(chi.URLParam(r, "submissionID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid submission ID")
		return
	}
	var req gradeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondValidation(w, err)
		return
	}
	sub, err := h.service.Grade(r.Context(), session.FromContext(r.Context()), submissionID, *req.Grade)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]*Submission{"submission": sub})
}

func (h *Handler) handleListForAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := strconv.ParseInt(chi.URLParam(r, "assignmentID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid assignment ID")
		return
	}
	list, err := h.service.ListForAssignment(r.Context(), session.FromContext(r.Context()), assignmentID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []Submission{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Submission{"submissions": list})
}
