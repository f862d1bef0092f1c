package models

import (
	"errors"
	"fmt"
	"time"

	"packcamp/internal/security"
)

var (
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrNewPasswordMismatch    = errors.New("new password and confirmation do not match")
)

// Roles a person can hold within their household
var MemberRoles = []string{
	"",
	"Adult Leader",
	"Cub Scout [Lion]",
	"Cub Scout [Tiger]",
	"Cub Scout [Wolf]",
	"Cub Scout [Bear]",
	"Cub Scout [Webelos]",
	"Cub Scout [Arrow of Light]",
	"Parent",
	"Guardian",
	"Sibling",
	"Other",
}

var Genders = []string{
	"Not provided",
	"Prefer not to share",
	"Male",
	"Female",
	"Other",
}

// Person represents any individual record in the organization, login-capable
// or not (a cub scout household member typically has no credentials).
type Person struct {
	ID           int64
	Username     string // empty unless the person can log in
	PasswordHash string
	IsAdmin      bool

	FirstName string
	LastName  string
	Role      string // one of MemberRoles
	Gender    string

	Email       string
	PhoneNumber string

	HasFoodAllergies     bool
	FoodAllergiesDetail  string
	HasFoodIntolerances  bool
	FoodIntolerancesNote string

	CanLogin              bool
	EmailConfirmed        bool
	EmailConfirmationCode string

	// HouseholdID is 0 until the person is assigned to a household.
	HouseholdID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName renders the participant string used on rosters. The role
// suffix is omitted when no role is set.
func (p *Person) DisplayName() string {
	if p.Role == "" {
		return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
	}
	return fmt.Sprintf("%s %s (%s)", p.FirstName, p.LastName, p.Role)
}

// HasHousehold reports whether the person has been assigned to a household.
func (p *Person) HasHousehold() bool {
	return p.HouseholdID != 0
}

// SetPassword replaces the stored hash with a fresh bcrypt hash of password.
func (p *Person) SetPassword(password string) error {
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

// ValidatePassword reports whether password matches the stored hash.
func (p *Person) ValidatePassword(password string) bool {
	return security.CheckPassword(password, p.PasswordHash)
}

// UpdatePassword replaces the stored hash after verifying the current
// password. The mismatch check runs first so a wrong current password never
// masks a confirmation typo. The change is in-memory only; the caller must
// persist the person explicitly.
func (p *Person) UpdatePassword(current, newPassword, confirmation string) error {
	if newPassword != confirmation {
		return ErrNewPasswordMismatch
	}
	if !p.ValidatePassword(current) {
		return ErrInvalidCurrentPassword
	}
	return p.SetPassword(newPassword)
}

// Session represents an authenticated browser session
type Session struct {
	ID        string
	PersonID  int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
