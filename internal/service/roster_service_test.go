package service

import (
	"errors"
	"testing"
)

func TestDeletePersonSelfGuard(t *testing.T) {
	s := &RosterService{}

	// The guard fires before any lookup, so no repository is needed
	if err := s.DeletePerson(7, 7); !errors.Is(err, ErrSelfDeletion) {
		t.Errorf("deleting own record: got %v, want ErrSelfDeletion", err)
	}
}

func TestNewPersonDefaults(t *testing.T) {
	s := &RosterService{}

	tests := []struct {
		name        string
		householdID int64
	}{
		{"no household", 0},
		{"default household", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.NewPerson(tt.householdID)
			if p.HouseholdID != tt.householdID {
				t.Errorf("HouseholdID = %d, want %d", p.HouseholdID, tt.householdID)
			}
			if p.Gender != "Not provided" {
				t.Errorf("Gender = %q, want Not provided", p.Gender)
			}
			if p.ID != 0 || p.CanLogin {
				t.Error("new person should be unsaved and login-incapable")
			}
		})
	}
}
