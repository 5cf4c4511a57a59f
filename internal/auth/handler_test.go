package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/campushub/internal/auth"
	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/session"
	"github.com/campushub/campushub/internal/shared"
	_ "github.com/campushub/campushub/testing"
)

type stubRepo struct {
	user *auth.User
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func newHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *session.Codec) {
	t.Helper()
	codec, err := session.NewCodec("test-secret")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return auth.NewHandler(nil, auth.NewService(repo), codec, false), codec
}

func storedUser(t *testing.T) *auth.User {
	return &auth.User{
		ID:           7,
		Name:         "Test Student",
		Email:        "student@test.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         authz.RoleStudent,
		DepartmentID: 2,
	}
}

func postLogin(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func router(t *testing.T, h *auth.Handler, codec *session.Codec) http.Handler {
	t.Helper()
	resolver := session.NewResolver(codec, nil)
	mux := newChiWithSession(resolver)
	h.MountRoutes(mux)
	return mux
}

func TestLoginSetsCookieAndReturnsIdentity(t *testing.T) {
	h, codec := newHandler(t, &stubRepo{user: storedUser(t)})
	srv := router(t, h, codec)

	rec := postLogin(t, srv, `{"email":"student@test.com","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User.ID != 7 || body.User.Role != "STUDENT" {
		t.Fatalf("unexpected identity: %+v", body.User)
	}
	if strings.Contains(rec.Body.String(), "passwordHash") || strings.Contains(rec.Body.String(), "password_hash") {
		t.Fatal("password hash leaked in response")
	}

	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly || cookie.Path != "/" || cookie.MaxAge != int(session.TokenTTL.Seconds()) {
		t.Fatalf("cookie attributes wrong: %+v", cookie)
	}

	// Scenario A: the cookie round-trips through session introspection.
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookie)
	intro := httptest.NewRecorder()
	srv.ServeHTTP(intro, req)
	if intro.Code != http.StatusOK {
		t.Fatalf("introspection status = %d", intro.Code)
	}
	var echo struct {
		Session struct {
			UserID       int64  `json:"userId"`
			Role         string `json:"role"`
			DepartmentID int64  `json:"departmentId"`
		} `json:"session"`
	}
	if err := json.Unmarshal(intro.Body.Bytes(), &echo); err != nil {
		t.Fatalf("decode introspection: %v", err)
	}
	if echo.Session.UserID != 7 || echo.Session.Role != "STUDENT" || echo.Session.DepartmentID != 2 {
		t.Fatalf("introspection mismatch: %+v", echo.Session)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	h, codec := newHandler(t, &stubRepo{user: storedUser(t)})
	srv := router(t, h, codec)

	unknown := postLogin(t, srv, `{"email":"nobody@test.com","password":"password123"}`)
	wrongPass := postLogin(t, srv, `{"email":"student@test.com","password":"wrong"}`)

	if unknown.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", unknown.Code, wrongPass.Code)
	}
	if unknown.Body.String() != wrongPass.Body.String() {
		t.Fatalf("failure bodies differ:\n%s\n%s", unknown.Body.String(), wrongPass.Body.String())
	}
	if len(unknown.Result().Cookies()) != 0 {
		t.Fatal("cookie set on failed login")
	}
}

func TestLoginValidation(t *testing.T) {
	h, codec := newHandler(t, &stubRepo{})
	srv := router(t, h, codec)

	rec := postLogin(t, srv, `{"email":"not-an-email","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fields") {
		t.Fatalf("expected field-level detail, got %s", rec.Body.String())
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h, codec := newHandler(t, &stubRepo{user: storedUser(t)})
	srv := router(t, h, codec)

	login := postLogin(t, srv, `{"email":"student@test.com","password":"password123"}`)
	cookie := sessionCookie(t, login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	cleared := sessionCookie(t, rec)
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cleared)
	}

	// Scenario D: a protected request without the cookie is anonymous again.
	intro := httptest.NewRecorder()
	srv.ServeHTTP(intro, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if intro.Code != http.StatusUnauthorized {
		t.Fatalf("introspection after logout = %d, want 401", intro.Code)
	}
}

// newChiWithSession mirrors the app session middleware for handler tests.
func newChiWithSession(resolver *session.Resolver) chi.Router {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := session.ContextWithSession(req.Context(), resolver.Resolve(req))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}
