package assignments

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for assignments.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers assignment routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/hub/assignments", h.handleList)
	r.Post("/api/hub/assignments", h.handleCreate)
	r.Post("/api/hub/assignments/{assignmentID}/upload-url", h.handleUploadTicket)
	r.Get("/api/hub/dashboard/due-assignments", h.handleDue)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListForSession(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []Assignment{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Assignment{"assignments": list})
}

func (h *Handler) handleDue(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Due(r.Context(), session.FromContext(r.Context()), 3)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []Assignment{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Assignment{"assignments": list})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := shared.DecodeJSON(r, &input); err != nil {
		shared.BadRequest(w, "Invalid request body")
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

type uploadRequest struct {
	FileName string `json:"fileName" validate:"required"`
	FileType string `json:"fileType"`
}

func (h *Handler) handleUploadTicket(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := strconv.ParseInt(chi.URLParam(r, "assignmentID"), 10, 64)
	if err != nil {
		shared.BadRequest(w, "Invalid assignment ID")
		return
	}
	var req uploadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondValidation(w, err)
		return
	}
	ticket, err := h.service.UploadTicket(r.Context(), session.FromContext(r.Context()), assignmentID, req.FileName)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, ticket)
}
