package models

import (
	"strings"
	"time"
)

// Household is the grouping unit for billing, emergency contacts, and
// default membership inheritance. It holds its members by reference only;
// removing a person from a household does not delete the person.
type Household struct {
	ID   int64
	Name string

	EmergencyContact1FirstName string
	EmergencyContact1LastName  string
	EmergencyContact1Phone     string
	EmergencyContact2FirstName string
	EmergencyContact2LastName  string
	EmergencyContact2Phone     string

	// Free text, one or more plates as entered by the family
	CarLicensePlates string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmergencyContact1 renders the primary contact as "First Last Phone",
// trimmed when parts are missing.
func (h *Household) EmergencyContact1() string {
	return joinContact(h.EmergencyContact1FirstName, h.EmergencyContact1LastName, h.EmergencyContact1Phone)
}

// EmergencyContact2 renders the optional secondary contact.
func (h *Household) EmergencyContact2() string {
	return joinContact(h.EmergencyContact2FirstName, h.EmergencyContact2LastName, h.EmergencyContact2Phone)
}

func joinContact(first, last, phone string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, last, phone} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// HouseholdWithMembers combines a household with its member roster
type HouseholdWithMembers struct {
	Household Household
	Members   []Person
}
