package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"packcamp/internal/models"
	"packcamp/internal/repository"
)

var ErrRegistrationNotFound = errors.New("registration not found")

// RegistrationService manages event sign-ups
type RegistrationService struct {
	registrationRepo *repository.RegistrationRepository
	personRepo       *repository.PersonRepository
	eventRepo        *repository.EventRepository
	emailService     *EmailService
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(registrationRepo *repository.RegistrationRepository, personRepo *repository.PersonRepository, eventRepo *repository.EventRepository, emailService *EmailService) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		personRepo:       personRepo,
		eventRepo:        eventRepo,
		emailService:     emailService,
	}
}

// MemberRegistration pairs a person with their current registration for one
// event. Registration is nil when the person has not signed up.
type MemberRegistration struct {
	Person       models.Person
	Registration *models.Registration
}

// GetOrCreate fetches the registration for a person and event, creating an
// empty one if none exists. Calling it twice yields the same row.
func (s *RegistrationService) GetOrCreate(personID, eventID int64) (*models.Registration, error) {
	reg, err := s.registrationRepo.GetOrCreate(personID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create registration: %w", err)
	}
	return reg, nil
}

// FamilyRegistrationState returns the household members of the acting
// person together with their current registrations for the event. A person
// without a household sees only themselves.
func (s *RegistrationService) FamilyRegistrationState(actingPerson *models.Person, eventID int64) ([]MemberRegistration, error) {
	var members []models.Person
	if actingPerson.HasHousehold() {
		var err error
		members, err = s.personRepo.GetByHousehold(actingPerson.HouseholdID)
		if err != nil {
			return nil, fmt.Errorf("failed to list household members: %w", err)
		}
	} else {
		members = []models.Person{*actingPerson}
	}

	state := make([]MemberRegistration, 0, len(members))
	for _, member := range members {
		reg, err := s.registrationRepo.GetByPersonAndEvent(member.ID, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to get registration: %w", err)
		}
		state = append(state, MemberRegistration{Person: member, Registration: reg})
	}
	return state, nil
}

// SubmitFamilyRegistration applies the submitted selections for each listed
// person. A selection with every flag false removes any existing
// registration; anything else is stored, creating the row when needed. The
// payment flag is never touched. A confirmation email goes to the submitter
// when the event exists and they have an address; send failures are logged
// and swallowed.
func (s *RegistrationService) SubmitFamilyRegistration(ctx context.Context, actingPerson *models.Person, eventID int64, selections map[int64]models.RegistrationSelection) error {
	for personID, sel := range selections {
		if err := s.applySelection(personID, eventID, sel); err != nil {
			return err
		}
	}

	s.sendRegistrationConfirmation(ctx, actingPerson, eventID)
	return nil
}

func (s *RegistrationService) applySelection(personID, eventID int64, sel models.RegistrationSelection) error {
	probe := &models.Registration{}
	probe.Apply(sel)

	if probe.IsEmpty() {
		existing, err := s.registrationRepo.GetByPersonAndEvent(personID, eventID)
		if err != nil {
			return fmt.Errorf("failed to get registration: %w", err)
		}
		if existing == nil {
			return nil
		}
		if err := s.registrationRepo.DeleteByID(existing.ID); err != nil {
			return fmt.Errorf("failed to delete registration: %w", err)
		}
		return nil
	}

	reg, err := s.registrationRepo.GetOrCreate(personID, eventID)
	if err != nil {
		return fmt.Errorf("failed to get or create registration: %w", err)
	}
	reg.Apply(sel)
	if err := s.registrationRepo.Update(reg); err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	return nil
}

func (s *RegistrationService) sendRegistrationConfirmation(ctx context.Context, actingPerson *models.Person, eventID int64) {
	if s.emailService == nil || actingPerson == nil || actingPerson.Email == "" {
		return
	}
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil || event == nil {
		log.Printf("Failed to load event %d for registration confirmation: %v", eventID, err)
		return
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, actingPerson.Email, actingPerson.FirstName, event); err != nil {
		log.Printf("Failed to send registration confirmation to %s: %v", actingPerson.Email, err)
	}
}

// SetPaid updates the payment flag on a registration
func (s *RegistrationService) SetPaid(registrationID int64, paid bool) error {
	reg, err := s.registrationRepo.GetByID(registrationID)
	if err != nil {
		return fmt.Errorf("failed to get registration: %w", err)
	}
	if reg == nil {
		return ErrRegistrationNotFound
	}
	reg.HasPaid = paid
	if err := s.registrationRepo.Update(reg); err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	return nil
}

// EventRegistrations returns all registrations for one event
func (s *RegistrationService) EventRegistrations(eventID int64) ([]models.Registration, error) {
	regs, err := s.registrationRepo.GetByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}
