package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"packcamp/internal/models"
	"packcamp/internal/repository"
	"packcamp/internal/security"
	"packcamp/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrEmailNotVerified   = errors.New("identity provider email is not verified")
)

// sentinelOAuthPassword is stored for accounts created through an identity
// provider. It is not a valid bcrypt hash, so password login can never
// succeed against it.
const sentinelOAuthPassword = "!external-auth"

// confirmationTokenTTL bounds how long an email confirmation link stays valid
const confirmationTokenTTL = 48 * time.Hour

// AuthService handles authentication business logic
type AuthService struct {
	personRepo      *repository.PersonRepository
	emailService    *EmailService
	sessionSecret   string
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(personRepo *repository.PersonRepository, emailService *EmailService, sessionSecret string, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		personRepo:      personRepo,
		emailService:    emailService,
		sessionSecret:   sessionSecret,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new login-capable person. The profile starts empty and
// is completed on the profile page after first login. A confirmation email
// is dispatched when the address is usable; send failures are logged but
// never surfaced, so registration still succeeds.
func (s *AuthService) Register(ctx context.Context, username, email, password, confirmation string) (*models.Person, error) {
	if err := validation.ValidateName(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if password != confirmation {
		return nil, models.ErrNewPasswordMismatch
	}

	existing, err := s.personRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	person := &models.Person{
		Username:              username,
		Email:                 email,
		Role:                  "Parent",
		Gender:                "Not provided",
		CanLogin:              true,
		EmailConfirmationCode: security.GenerateConfirmationCode(),
	}
	if err := person.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	person, err = s.personRepo.Create(person)
	if err != nil {
		if isDuplicateConstraint(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	s.sendConfirmationEmail(ctx, person)

	return person, nil
}

// sendConfirmationEmail dispatches a confirmation link. Failures are logged
// and swallowed.
func (s *AuthService) sendConfirmationEmail(ctx context.Context, person *models.Person) {
	if s.emailService == nil || person.Email == "" {
		return
	}
	token, err := security.GenerateConfirmationToken(s.sessionSecret, person.ID, person.EmailConfirmationCode, confirmationTokenTTL)
	if err != nil {
		log.Printf("Failed to generate confirmation token for person %d: %v", person.ID, err)
		return
	}
	if err := s.emailService.SendEmailConfirmation(ctx, person.Email, person.FirstName, token); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", person.Email, err)
	}
}

// ConfirmEmail validates a confirmation token and marks the person's email
// as confirmed.
func (s *AuthService) ConfirmEmail(tokenString string) error {
	claims, err := security.ParseConfirmationToken(s.sessionSecret, tokenString)
	if err != nil {
		return err
	}

	person, err := s.personRepo.GetByID(claims.PersonID)
	if err != nil {
		return fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil || person.EmailConfirmationCode != claims.Code {
		return security.ErrInvalidToken
	}

	person.EmailConfirmed = true
	if err := s.personRepo.Update(person); err != nil {
		return fmt.Errorf("failed to confirm email: %w", err)
	}
	return nil
}

// Login authenticates a person by username and creates a session
func (s *AuthService) Login(username, password string) (*models.Session, *models.Person, error) {
	person, err := s.personRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil || !person.CanLogin {
		return nil, nil, ErrInvalidCredentials
	}

	if !person.ValidatePassword(password) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(person.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, person, nil
}

// OAuthLogin maps a resolved external identity onto a person by email
// match, creating a new login-capable person on first sign-in with the
// default role "Parent" and a non-usable password hash.
func (s *AuthService) OAuthLogin(email, givenName, familyName string, emailVerified bool) (*models.Session, *models.Person, error) {
	if !emailVerified {
		return nil, nil, ErrEmailNotVerified
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	person, err := s.personRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up person by email: %w", err)
	}

	if person == nil {
		person = &models.Person{
			Username:              email,
			FirstName:             givenName,
			LastName:              familyName,
			Email:                 email,
			Role:                  "Parent",
			Gender:                "Not provided",
			CanLogin:              true,
			PasswordHash:          sentinelOAuthPassword,
			EmailConfirmed:        true, // the provider already verified it
			EmailConfirmationCode: "N/A",
		}
		person, err = s.personRepo.Create(person)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create person from external identity: %w", err)
		}
	}

	session, err := s.createSession(person.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, person, nil
}

func (s *AuthService) createSession(personID int64) (*models.Session, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.personRepo.CreateSession(sessionID, personID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession checks if a session is valid and returns the associated person
func (s *AuthService) ValidateSession(sessionID string) (*models.Person, error) {
	session, err := s.personRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		// Clean up expired session
		_ = s.personRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	person, err := s.personRepo.GetByID(session.PersonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil {
		return nil, ErrSessionNotFound
	}

	return person, nil
}

// IsAdmin resolves a session to a person and reports whether they are an
// administrator. An unresolvable identity is simply not an admin.
func (s *AuthService) IsAdmin(sessionID string) bool {
	person, err := s.ValidateSession(sessionID)
	if err != nil {
		return false
	}
	return person.IsAdmin
}

// UpdatePassword verifies and replaces a person's password, then persists
// the change and sends a notice. The notice failure is logged and swallowed.
func (s *AuthService) UpdatePassword(ctx context.Context, person *models.Person, current, newPassword, confirmation string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}
	if err := person.UpdatePassword(current, newPassword, confirmation); err != nil {
		return err
	}
	if err := s.personRepo.Update(person); err != nil {
		return fmt.Errorf("failed to save password: %w", err)
	}

	if s.emailService != nil && person.Email != "" {
		if err := s.emailService.SendPasswordChangedNotice(ctx, person.Email, person.FirstName); err != nil {
			log.Printf("Failed to send password change notice to %s: %v", person.Email, err)
		}
	}
	return nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.personRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.personRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// isDuplicateConstraint reports whether err is a unique-constraint violation
// surfaced by any of the supported drivers.
func isDuplicateConstraint(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
