package security

import (
	"testing"
	"time"
)

func TestConfirmationTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	tokenString, err := GenerateConfirmationToken(secret, 42, "one-time-code", time.Hour)
	if err != nil {
		t.Fatalf("GenerateConfirmationToken() error = %v", err)
	}

	claims, err := ParseConfirmationToken(secret, tokenString)
	if err != nil {
		t.Fatalf("ParseConfirmationToken() error = %v", err)
	}

	if claims.PersonID != 42 {
		t.Errorf("PersonID = %d, want 42", claims.PersonID)
	}
	if claims.Code != "one-time-code" {
		t.Errorf("Code = %q, want %q", claims.Code, "one-time-code")
	}
}

func TestParseConfirmationTokenRejects(t *testing.T) {
	secret := "test-secret"

	expired, err := GenerateConfirmationToken(secret, 1, "code", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateConfirmationToken() error = %v", err)
	}

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{
			name:   "expired token",
			secret: secret,
			token:  expired,
		},
		{
			name:   "wrong secret",
			secret: "another-secret",
			token:  mustToken(t, secret),
		},
		{
			name:   "garbage token",
			secret: secret,
			token:  "not.a.token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfirmationToken(tt.secret, tt.token); err == nil {
				t.Error("ParseConfirmationToken() accepted an invalid token")
			}
		})
	}
}

func mustToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := GenerateConfirmationToken(secret, 1, "code", time.Hour)
	if err != nil {
		t.Fatalf("GenerateConfirmationToken() error = %v", err)
	}
	return token
}
