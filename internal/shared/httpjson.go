package shared

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// FieldError carries per-field detail for validation failures.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type errorBody struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError translates domain errors to their HTTP status. Unexpected
// errors are logged and surfaced as a generic 500 without internal detail.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		RespondJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid email or password"})
	case errors.Is(err, ErrUnauthorized):
		RespondJSON(w, http.StatusUnauthorized, errorBody{Error: "Not authenticated"})
	case errors.Is(err, ErrForbidden):
		RespondJSON(w, http.StatusForbidden, errorBody{Error: "Not authorized"})
	case errors.Is(err, ErrNotFound):
		RespondJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	case errors.Is(err, ErrNoDepartment):
		RespondJSON(w, http.StatusBadRequest, errorBody{Error: "Not in a department"})
	default:
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
			}
			RespondJSON(w, http.StatusBadRequest, errorBody{Error: "Validation failed", Fields: fields})
			return
		}
		if logger != nil {
			logger.Error("request failed", slog.Any("error", err))
		}
		RespondJSON(w, http.StatusInternalServerError, errorBody{Error: "An unexpected error occurred"})
	}
}

// RespondValidation writes a 400 with field-level detail.
func RespondValidation(w http.ResponseWriter, err error) {
	RespondError(w, nil, err)
}

// DecodeJSON decodes the request body into dst, rejecting unknown junk sizes.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return dec.Decode(dst)
}

// BadRequest writes a 400 with a plain message.
func BadRequest(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
