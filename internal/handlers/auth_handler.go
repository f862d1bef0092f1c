package handlers

import (
	"html/template"
	"log"
	"net/http"

	"packcamp/internal/security"
	"packcamp/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	templates            *template.Template
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, templates *template.Template, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		templates:            templates,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

func (h *AuthHandler) googleConfigured() bool {
	provider, ok := h.oauthProviders["google"]
	return ok && provider.Config != nil && provider.Config.ClientID != "" && provider.Config.ClientSecret != ""
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	// Already logged in
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
	}

	data := LoginViewData{
		Title:       "Login - PackCamp",
		Success:     r.URL.Query().Get("message"),
		GoogleLogin: h.googleConfigured(),
	}

	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		log.Printf("Error rendering login template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	session, _, err := h.authService.Login(username, password)
	if err != nil {
		data := LoginViewData{
			Title:       "Login - PackCamp",
			Error:       "Invalid username or password",
			Username:    username,
			GoogleLogin: h.googleConfigured(),
		}
		if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
			log.Printf("Error rendering login template: %v", err)
			http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
	}

	data := RegisterViewData{
		Title: "Register - PackCamp",
	}

	if err := h.templates.ExecuteTemplate(w, "register.tmpl", data); err != nil {
		log.Printf("Error rendering register template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirmation := r.FormValue("password_confirmation")

	_, err := h.authService.Register(r.Context(), username, email, password, confirmation)
	if err != nil {
		data := RegisterViewData{
			Title:    "Register - PackCamp",
			Error:    err.Error(),
			Username: username,
			Email:    email,
		}
		if err := h.templates.ExecuteTemplate(w, "register.tmpl", data); err != nil {
			log.Printf("Error rendering register template: %v", err)
			http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		}
		return
	}

	// Auto-login after registration
	session, _, err := h.authService.Login(username, password)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// ConfirmEmail handles the confirmation link from the registration email
func (h *AuthHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing confirmation token", http.StatusBadRequest)
		return
	}

	if err := h.authService.ConfirmEmail(token); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid or expired confirmation link", "Email confirmation failed", err)
		return
	}

	http.Redirect(w, r, "/login?message=Email+confirmed", http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Root redirects to the member home or the login page
func (h *AuthHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
