package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"packcamp/internal/models"
	"packcamp/internal/security"
	"packcamp/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const PersonContextKey ContextKey = "person"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	rateLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, rateLimiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		rateLimiter: rateLimiter,
	}
}

// RequireAuth is middleware that requires a valid session
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		person, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), PersonContextKey, person)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin is middleware that requires a valid admin session
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		person := GetPersonFromContext(r.Context())
		if person == nil || !person.IsAdmin {
			http.Error(w, ErrUnauthorized, http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

// CSRFProtect validates the csrf_token form field against the session
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Error(w, ErrUnauthorized, http.StatusForbidden)
			return
		}

		contentType := r.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "multipart/form-data") {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
				return
			}
		} else if err := r.ParseForm(); err != nil {
			http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
			return
		}

		token := r.FormValue("csrf_token")
		if !m.csrf.ValidateToken(cookie.Value, token) {
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}

		next(w, r)
	}
}

// RateLimit throttles requests per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// CSRFToken returns the CSRF token for the request's session, or an empty
// string when there is no session.
func (m *Middleware) CSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, err := m.csrf.GenerateToken(cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetPersonFromContext retrieves the authenticated person from the request context
func GetPersonFromContext(ctx context.Context) *models.Person {
	person, ok := ctx.Value(PersonContextKey).(*models.Person)
	if !ok {
		return nil
	}
	return person
}
