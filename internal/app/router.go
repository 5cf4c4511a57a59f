package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/campushub/campushub/internal/admin"
	"github.com/campushub/campushub/internal/assignments"
	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/calendar"
	"github.com/campushub/campushub/internal/courses"
	"github.com/campushub/campushub/internal/departments"
	"github.com/campushub/campushub/internal/lectures"
	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/submissions"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Resolver           *session.Resolver
	AuthHandler        *auth.Handler
	CoursesHandler     *courses.Handler
	LecturesHandler    *lectures.Handler
	AssignmentsHandler *assignments.Handler
	SubmissionsHandler *submissions.Handler
	CalendarHandler    *calendar.Handler
	DepartmentsHandler *departments.Handler
	AdminHandler       *admin.Handler
}

// NewRouter constructs the chi.Router with Campus Hub defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Resolver: params.Resolver,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Page shells. The gatekeeper steers browsers between them; the client
	// renders against the /api surface.
	r.Get("/", servePage("Campus Hub"))
	r.Get("/auth/login", servePage("Sign in"))
	r.Get("/hub/dashboard", servePage("Dashboard"))

	if params.AuthHandler != nil {
		params.AuthHandler.MountRoutes(r)
	}
	if params.CoursesHandler != nil {
		params.CoursesHandler.MountRoutes(r)
	}
	if params.LecturesHandler != nil {
		params.LecturesHandler.MountRoutes(r)
	}
	if params.AssignmentsHandler != nil {
		params.AssignmentsHandler.MountRoutes(r)
	}
	if params.SubmissionsHandler != nil {
		params.SubmissionsHandler.MountRoutes(r)
	}
	if params.CalendarHandler != nil {
		params.CalendarHandler.MountRoutes(r)
	}
	if params.DepartmentsHandler != nil {
		params.DepartmentsHandler.MountRoutes(r)
	}
	if params.AdminHandler != nil {
		params.AdminHandler.MountRoutes(r)
	}

	return r
}

func servePage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<!doctype html><html><head><title>" + title + "</title></head><body data-app=\"campushub\"></body></html>"))
	}
}
