package repository

import (
	"database/sql"
	"fmt"
	"time"

	"packcamp/internal/database"
	"packcamp/internal/models"
)

// RegistrationRepository handles database operations for event registrations
type RegistrationRepository struct {
	db *database.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *database.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = `id, person_id, event_id, registered_at,
	stay_friday_night, stay_saturday_night,
	eat_saturday_breakfast, eat_saturday_lunch, eat_saturday_dinner, eat_sunday_breakfast,
	has_paid`

func scanRegistration(row interface{ Scan(...interface{}) error }) (*models.Registration, error) {
	reg := &models.Registration{}
	err := row.Scan(
		&reg.ID, &reg.PersonID, &reg.EventID, &reg.RegisteredAt,
		&reg.StayFridayNight, &reg.StaySaturdayNight,
		&reg.EatSaturdayBreakfast, &reg.EatSaturdayLunch, &reg.EatSaturdayDinner, &reg.EatSundayBreakfast,
		&reg.HasPaid,
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// GetByID retrieves a registration by its ID, or (nil, nil) when missing
func (r *RegistrationRepository) GetByID(id int64) (*models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM event_registrations WHERE id = ?"
	reg, err := scanRegistration(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// GetByPersonAndEvent retrieves the registration for a (person, event) pair.
// Returns (nil, nil) when none exists.
func (r *RegistrationRepository) GetByPersonAndEvent(personID, eventID int64) (*models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM event_registrations WHERE person_id = ? AND event_id = ?"
	reg, err := scanRegistration(r.db.QueryRow(query, personID, eventID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// GetOrCreate returns the existing registration for the pair, or creates one
// with all flags false. The unique (person_id, event_id) index makes this
// idempotent.
func (r *RegistrationRepository) GetOrCreate(personID, eventID int64) (*models.Registration, error) {
	reg, err := r.GetByPersonAndEvent(personID, eventID)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		return reg, nil
	}

	query := "INSERT INTO event_registrations (person_id, event_id) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, personID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return &models.Registration{
		ID:           id,
		PersonID:     personID,
		EventID:      eventID,
		RegisteredAt: time.Now(),
	}, nil
}

// GetByEvent retrieves all registrations for one event
func (r *RegistrationRepository) GetByEvent(eventID int64) ([]models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM event_registrations WHERE event_id = ? ORDER BY id ASC"
	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// GetAll retrieves every registration
func (r *RegistrationRepository) GetAll() ([]models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM event_registrations ORDER BY id ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// Update persists the selection and payment flags of a registration
func (r *RegistrationRepository) Update(reg *models.Registration) error {
	query := `
		UPDATE event_registrations SET
			stay_friday_night = ?, stay_saturday_night = ?,
			eat_saturday_breakfast = ?, eat_saturday_lunch = ?, eat_saturday_dinner = ?, eat_sunday_breakfast = ?,
			has_paid = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		reg.StayFridayNight, reg.StaySaturdayNight,
		reg.EatSaturdayBreakfast, reg.EatSaturdayLunch, reg.EatSaturdayDinner, reg.EatSundayBreakfast,
		reg.HasPaid, reg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	return nil
}

// DeleteByID removes a registration
func (r *RegistrationRepository) DeleteByID(id int64) error {
	query := "DELETE FROM event_registrations WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}
