package repository

import (
	"database/sql"
	"fmt"
	"time"

	"packcamp/internal/database"
	"packcamp/internal/models"
)

// HouseholdRepository handles database operations for households
type HouseholdRepository struct {
	db *database.DB
}

// NewHouseholdRepository creates a new household repository
func NewHouseholdRepository(db *database.DB) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

const householdColumns = `id, name,
	emergency_contact_1_first_name, emergency_contact_1_last_name, emergency_contact_1_phone,
	emergency_contact_2_first_name, emergency_contact_2_last_name, emergency_contact_2_phone,
	car_license_plates, created_at, updated_at`

func scanHousehold(row interface{ Scan(...interface{}) error }) (*models.Household, error) {
	h := &models.Household{}
	err := row.Scan(
		&h.ID, &h.Name,
		&h.EmergencyContact1FirstName, &h.EmergencyContact1LastName, &h.EmergencyContact1Phone,
		&h.EmergencyContact2FirstName, &h.EmergencyContact2LastName, &h.EmergencyContact2Phone,
		&h.CarLicensePlates, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Create inserts a new household
func (r *HouseholdRepository) Create(h *models.Household) (*models.Household, error) {
	query := `
		INSERT INTO households (name,
			emergency_contact_1_first_name, emergency_contact_1_last_name, emergency_contact_1_phone,
			emergency_contact_2_first_name, emergency_contact_2_last_name, emergency_contact_2_phone,
			car_license_plates)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, h.Name,
		h.EmergencyContact1FirstName, h.EmergencyContact1LastName, h.EmergencyContact1Phone,
		h.EmergencyContact2FirstName, h.EmergencyContact2LastName, h.EmergencyContact2Phone,
		h.CarLicensePlates,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}

	h.ID = id
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()
	return h, nil
}

// GetByID retrieves a household by ID. Returns (nil, nil) when no row exists.
func (r *HouseholdRepository) GetByID(id int64) (*models.Household, error) {
	query := "SELECT " + householdColumns + " FROM households WHERE id = ?"
	h, err := scanHousehold(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return h, nil
}

// GetAll retrieves every household ordered by name
func (r *HouseholdRepository) GetAll() ([]models.Household, error) {
	query := "SELECT " + householdColumns + " FROM households ORDER BY name ASC, id ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query households: %w", err)
	}
	defer rows.Close()

	var households []models.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan household: %w", err)
		}
		households = append(households, *h)
	}
	return households, rows.Err()
}

// Update persists all mutable fields of a household
func (r *HouseholdRepository) Update(h *models.Household) error {
	query := `
		UPDATE households SET name = ?,
			emergency_contact_1_first_name = ?, emergency_contact_1_last_name = ?, emergency_contact_1_phone = ?,
			emergency_contact_2_first_name = ?, emergency_contact_2_last_name = ?, emergency_contact_2_phone = ?,
			car_license_plates = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, h.Name,
		h.EmergencyContact1FirstName, h.EmergencyContact1LastName, h.EmergencyContact1Phone,
		h.EmergencyContact2FirstName, h.EmergencyContact2LastName, h.EmergencyContact2Phone,
		h.CarLicensePlates, h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update household: %w", err)
	}
	return nil
}

// DeleteByID removes a household. Members keep their person records; their
// household reference is cleared by the foreign key.
func (r *HouseholdRepository) DeleteByID(id int64) error {
	query := "DELETE FROM households WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete household: %w", err)
	}
	return nil
}
