package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"packcamp/internal/config"
	"packcamp/internal/database"
	"packcamp/internal/handlers"
	"packcamp/internal/models"
	"packcamp/internal/repository"
	"packcamp/internal/security"
	"packcamp/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	personRepo := repository.NewPersonRepository(db)
	householdRepo := repository.NewHouseholdRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	authService := service.NewAuthService(personRepo, emailService, cfg.SessionSecret, cfg.SessionDuration)
	rosterService := service.NewRosterService(personRepo, householdRepo)
	eventService := service.NewEventService(eventRepo)
	registrationService := service.NewRegistrationService(registrationRepo, personRepo, eventRepo, emailService)
	reportService := service.NewReportService(registrationRepo, personRepo, householdRepo, cfg.MealPriceCents)
	backupService := service.NewBackupService(db)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
	}

	// Initialize handlers
	csrf := security.NewCSRFGenerator(cfg.SessionSecret)
	rateLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, csrf, rateLimiter)
	authHandler := handlers.NewAuthHandler(authService, templates, oauthProviders, cfg.OAuthRedirectBaseURL)
	memberHandler := handlers.NewMemberHandler(authService, rosterService, eventService, middleware, templates)
	eventHandler := handlers.NewEventHandler(eventService, registrationService, reportService, middleware, templates)
	adminHandler := handlers.NewAdminHandler(rosterService, eventService, registrationService, reportService, backupService, middleware, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /", authHandler.Root)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/confirm", authHandler.ConfirmEmail)
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Member routes
	mux.HandleFunc("GET /home", middleware.RequireAuth(memberHandler.Home))
	mux.HandleFunc("GET /profile", middleware.RequireAuth(memberHandler.ShowProfile))
	mux.HandleFunc("POST /profile", middleware.RequireAuth(middleware.CSRFProtect(memberHandler.UpdateProfile)))
	mux.HandleFunc("POST /profile/password", middleware.RequireAuth(middleware.CSRFProtect(memberHandler.UpdatePassword)))
	mux.HandleFunc("GET /household", middleware.RequireAuth(memberHandler.ShowHousehold))
	mux.HandleFunc("POST /household", middleware.RequireAuth(middleware.CSRFProtect(memberHandler.UpdateHousehold)))
	mux.HandleFunc("POST /household/create", middleware.RequireAuth(middleware.CSRFProtect(memberHandler.CreateHousehold)))
	mux.HandleFunc("POST /household/members", middleware.RequireAuth(middleware.CSRFProtect(memberHandler.AddFamilyMember)))

	// Event routes
	mux.HandleFunc("GET /events/{id}", middleware.RequireAuth(eventHandler.ShowEvent))
	mux.HandleFunc("GET /events/{id}/register", middleware.RequireAuth(eventHandler.ShowRegisterFamily))
	mux.HandleFunc("POST /events/{id}/register", middleware.RequireAuth(middleware.CSRFProtect(eventHandler.RegisterFamily)))

	// Admin routes
	mux.HandleFunc("GET /admin", middleware.RequireAdmin(adminHandler.ShowDashboard))
	mux.HandleFunc("GET /admin/people", middleware.RequireAdmin(adminHandler.ShowPeople))
	mux.HandleFunc("GET /admin/people/new", middleware.RequireAdmin(adminHandler.ShowPersonForm))
	mux.HandleFunc("GET /admin/people/{id}", middleware.RequireAdmin(adminHandler.ShowPersonForm))
	mux.HandleFunc("POST /admin/people", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.SavePerson)))
	mux.HandleFunc("POST /admin/people/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeletePerson)))
	mux.HandleFunc("GET /admin/households", middleware.RequireAdmin(adminHandler.ShowHouseholds))
	mux.HandleFunc("GET /admin/households/new", middleware.RequireAdmin(adminHandler.ShowHouseholdForm))
	mux.HandleFunc("GET /admin/households/{id}", middleware.RequireAdmin(adminHandler.ShowHouseholdForm))
	mux.HandleFunc("POST /admin/households", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.SaveHousehold)))
	mux.HandleFunc("POST /admin/households/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteHousehold)))
	mux.HandleFunc("GET /admin/events/new", middleware.RequireAdmin(adminHandler.ShowEventForm))
	mux.HandleFunc("GET /admin/events/{id}/edit", middleware.RequireAdmin(adminHandler.ShowEventForm))
	mux.HandleFunc("POST /admin/events", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.SaveEvent)))
	mux.HandleFunc("POST /admin/events/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteEvent)))
	mux.HandleFunc("GET /admin/events/{id}/report", middleware.RequireAdmin(adminHandler.ShowEventReport))
	mux.HandleFunc("POST /admin/registrations/{id}/paid", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.SetRegistrationPaid)))
	mux.HandleFunc("GET /admin/backup", middleware.RequireAdmin(adminHandler.ShowBackup))
	mux.HandleFunc("GET /admin/backup/export", middleware.RequireAdmin(adminHandler.ExportBackup))
	mux.HandleFunc("POST /admin/backup/import", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.ImportBackup)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	patterns := []string{
		filepath.Join(templatesPath, "auth/*.tmpl"),
		filepath.Join(templatesPath, "member/*.tmpl"),
		filepath.Join(templatesPath, "admin/*.tmpl"),
	}

	files := []string{filepath.Join(templatesPath, "base.tmpl")}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	funcMap := template.FuncMap{
		"money": func(cents int) string {
			return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
		},
		"formatEventDate": func(date string) string {
			t, err := time.ParseInLocation(models.DateLayout, date, time.Local)
			if err != nil {
				return date
			}
			return t.Format("Mon, Jan 2 2006")
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"add": func(a, b int) int {
			return a + b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
