package service

import (
	"context"
	"path/filepath"
	"testing"

	"packcamp/internal/database"
	"packcamp/internal/models"
	"packcamp/internal/repository"
)

func newRegistrationFixture(t *testing.T) (*RegistrationService, *models.Person, *models.Event) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_registrations.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	personRepo := repository.NewPersonRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)

	person, err := personRepo.Create(&models.Person{FirstName: "Ann", LastName: "Smith", Role: "Parent"})
	if err != nil {
		t.Fatalf("Failed to create person: %v", err)
	}
	event, err := eventRepo.Create(&models.Event{EventType: models.EventTypeCamping, Date: "2026-09-12", Location: "Camp Ridge", DurationInDays: 2})
	if err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	svc := NewRegistrationService(registrationRepo, personRepo, eventRepo, nil)
	return svc, person, event
}

func TestSubmitFamilyRegistrationUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, person, event := newRegistrationFixture(t)
	ctx := context.Background()

	// First submission creates the row
	selections := map[int64]models.RegistrationSelection{
		person.ID: {StayFridayNight: true, EatSaturdayBreakfast: true},
	}
	if err := svc.SubmitFamilyRegistration(ctx, person, event.ID, selections); err != nil {
		t.Fatalf("SubmitFamilyRegistration() error: %v", err)
	}

	reg, err := svc.registrationRepo.GetByPersonAndEvent(person.ID, event.ID)
	if err != nil {
		t.Fatalf("Failed to get registration: %v", err)
	}
	if reg == nil {
		t.Fatal("expected a registration row after non-empty submission")
	}
	if !reg.StayFridayNight || !reg.EatSaturdayBreakfast || reg.EatSaturdayLunch {
		t.Errorf("flags not stored as submitted: %+v", reg)
	}

	// A resubmission with different flags updates in place and leaves the
	// payment flag alone
	if err := svc.SetPaid(reg.ID, true); err != nil {
		t.Fatalf("SetPaid() error: %v", err)
	}
	selections[person.ID] = models.RegistrationSelection{EatSaturdayLunch: true}
	if err := svc.SubmitFamilyRegistration(ctx, person, event.ID, selections); err != nil {
		t.Fatalf("SubmitFamilyRegistration() error: %v", err)
	}

	updated, err := svc.registrationRepo.GetByPersonAndEvent(person.ID, event.ID)
	if err != nil {
		t.Fatalf("Failed to get registration: %v", err)
	}
	if updated == nil {
		t.Fatal("registration row disappeared on resubmission")
	}
	if updated.ID != reg.ID {
		t.Errorf("resubmission created a new row: id %d, want %d", updated.ID, reg.ID)
	}
	if updated.StayFridayNight || updated.EatSaturdayBreakfast || !updated.EatSaturdayLunch {
		t.Errorf("flags not replaced on resubmission: %+v", updated)
	}
	if !updated.HasPaid {
		t.Error("resubmission cleared the payment flag")
	}
}

func TestSubmitFamilyRegistrationDeletesEmptied(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, person, event := newRegistrationFixture(t)
	ctx := context.Background()

	selections := map[int64]models.RegistrationSelection{
		person.ID: {EatSaturdayLunch: true, EatSundayBreakfast: true},
	}
	if err := svc.SubmitFamilyRegistration(ctx, person, event.ID, selections); err != nil {
		t.Fatalf("SubmitFamilyRegistration() error: %v", err)
	}

	// Clearing every flag removes the row instead of storing it
	selections[person.ID] = models.RegistrationSelection{}
	if err := svc.SubmitFamilyRegistration(ctx, person, event.ID, selections); err != nil {
		t.Fatalf("SubmitFamilyRegistration() error: %v", err)
	}

	reg, err := svc.registrationRepo.GetByPersonAndEvent(person.ID, event.ID)
	if err != nil {
		t.Fatalf("Failed to get registration: %v", err)
	}
	if reg != nil {
		t.Errorf("emptied registration should be deleted, found %+v", reg)
	}

	// An all-false submission with no existing row stores nothing
	if err := svc.SubmitFamilyRegistration(ctx, person, event.ID, selections); err != nil {
		t.Fatalf("SubmitFamilyRegistration() error: %v", err)
	}
	reg, err = svc.registrationRepo.GetByPersonAndEvent(person.ID, event.ID)
	if err != nil {
		t.Fatalf("Failed to get registration: %v", err)
	}
	if reg != nil {
		t.Errorf("all-false submission should not create a row, found %+v", reg)
	}
}
