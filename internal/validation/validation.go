package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Error represents a validation error on one field
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return Error{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return Error{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return Error{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return Error{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Error{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return Error{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateDate checks that value is a date of the form YYYY-MM-DD
func ValidateDate(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return Error{Field: "date", Message: "date is required"}
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return Error{Field: "date", Message: "expected format YYYY-MM-DD"}
	}
	return nil
}
