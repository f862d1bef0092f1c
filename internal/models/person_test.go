package models

import (
	"errors"
	"testing"
	"time"
)

func newTestPerson(t *testing.T, password string) *Person {
	t.Helper()
	p := &Person{
		ID:        1,
		Username:  "jdoe",
		FirstName: "John",
		LastName:  "Doe",
		Role:      "Parent",
		Email:     "jdoe@example.com",
		CanLogin:  true,
	}
	if err := p.SetPassword(password); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	return p
}

func TestPersonPasswordRoundTrip(t *testing.T) {
	p := newTestPerson(t, "correct-horse")

	if !p.ValidatePassword("correct-horse") {
		t.Error("ValidatePassword() = false for the password just set")
	}
	if p.ValidatePassword("wrong-horse") {
		t.Error("ValidatePassword() = true for a wrong password")
	}
	if p.PasswordHash == "correct-horse" {
		t.Error("SetPassword() stored the plaintext password")
	}

	// A second hash of the same password must differ (fresh salt)
	first := p.PasswordHash
	if err := p.SetPassword("correct-horse"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if p.PasswordHash == first {
		t.Error("SetPassword() produced identical hashes for the same password")
	}
}

func TestPersonUpdatePassword(t *testing.T) {
	tests := []struct {
		name         string
		current      string
		newPassword  string
		confirmation string
		wantErr      error
	}{
		{
			name:         "successful update",
			current:      "original",
			newPassword:  "replacement",
			confirmation: "replacement",
		},
		{
			name:         "confirmation mismatch",
			current:      "original",
			newPassword:  "replacement",
			confirmation: "rep1acement",
			wantErr:      ErrNewPasswordMismatch,
		},
		{
			name:         "mismatch reported even with wrong current password",
			current:      "not-the-password",
			newPassword:  "replacement",
			confirmation: "rep1acement",
			wantErr:      ErrNewPasswordMismatch,
		},
		{
			name:         "wrong current password",
			current:      "not-the-password",
			newPassword:  "replacement",
			confirmation: "replacement",
			wantErr:      ErrInvalidCurrentPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPerson(t, "original")
			before := p.PasswordHash

			err := p.UpdatePassword(tt.current, tt.newPassword, tt.confirmation)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdatePassword() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				if p.PasswordHash != before {
					t.Error("UpdatePassword() changed the stored hash on failure")
				}
				return
			}
			if !p.ValidatePassword(tt.newPassword) {
				t.Error("UpdatePassword() did not install the new password")
			}
			if p.ValidatePassword("original") {
				t.Error("UpdatePassword() left the old password valid")
			}
		})
	}
}

func TestPersonDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{"with role", Person{FirstName: "Jane", LastName: "Doe", Role: "Adult Leader"}, "Jane Doe (Adult Leader)"},
		{"no role", Person{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.person.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				PersonID:  1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			if got := session.IsExpired(); got != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}
