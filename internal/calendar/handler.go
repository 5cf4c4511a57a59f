package calendar

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
)

// Handler wires HTTP endpoints for the calendar.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers calendar routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/hub/calendar/events", h.handleFeed)
	r.Post("/api/hub/calendar/events", h.handleCreate)
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Feed(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	shared.RespondJSON(w, http.StatusOK, map[string][]Entry{"events": entries})
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
	event, err := h.service.CreateEvent(r.Context(), session.FromContext(r.Context()), input)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, map[string]*Event{"event": event})
}
