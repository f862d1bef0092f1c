package repository

import (
	"database/sql"
	"fmt"
	"time"

	"packcamp/internal/database"
	"packcamp/internal/models"
)

// PersonRepository handles database operations for people and their sessions
type PersonRepository struct {
	db *database.DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *database.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

const personColumns = `id, COALESCE(username, ''), password_hash, is_admin,
	first_name, last_name, role, gender, email, phone_number,
	has_food_allergies, food_allergies_detail, has_food_intolerances, food_intolerances,
	can_login, email_confirmed, email_confirmation_code,
	COALESCE(household_id, 0), created_at, updated_at`

func scanPerson(row interface{ Scan(...interface{}) error }) (*models.Person, error) {
	p := &models.Person{}
	err := row.Scan(
		&p.ID, &p.Username, &p.PasswordHash, &p.IsAdmin,
		&p.FirstName, &p.LastName, &p.Role, &p.Gender, &p.Email, &p.PhoneNumber,
		&p.HasFoodAllergies, &p.FoodAllergiesDetail, &p.HasFoodIntolerances, &p.FoodIntolerancesNote,
		&p.CanLogin, &p.EmailConfirmed, &p.EmailConfirmationCode,
		&p.HouseholdID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// nullableUsername stores empty usernames as NULL so the unique index only
// applies to login-capable people.
func nullableUsername(username string) sql.NullString {
	return sql.NullString{String: username, Valid: username != ""}
}

// nullableHouseholdID stores the zero "unassigned" sentinel as NULL.
func nullableHouseholdID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// Create inserts a new person and returns it with its assigned ID
func (r *PersonRepository) Create(p *models.Person) (*models.Person, error) {
	query := `
		INSERT INTO people (username, password_hash, is_admin,
			first_name, last_name, role, gender, email, phone_number,
			has_food_allergies, food_allergies_detail, has_food_intolerances, food_intolerances,
			can_login, email_confirmed, email_confirmation_code, household_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		nullableUsername(p.Username), p.PasswordHash, p.IsAdmin,
		p.FirstName, p.LastName, p.Role, p.Gender, p.Email, p.PhoneNumber,
		p.HasFoodAllergies, p.FoodAllergiesDetail, p.HasFoodIntolerances, p.FoodIntolerancesNote,
		p.CanLogin, p.EmailConfirmed, p.EmailConfirmationCode, nullableHouseholdID(p.HouseholdID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	p.ID = id
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return p, nil
}

// GetByID retrieves a person by ID. Returns (nil, nil) when no row exists.
func (r *PersonRepository) GetByID(id int64) (*models.Person, error) {
	query := "SELECT " + personColumns + " FROM people WHERE id = ?"
	p, err := scanPerson(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return p, nil
}

// GetByUsername retrieves a person by login username
func (r *PersonRepository) GetByUsername(username string) (*models.Person, error) {
	query := "SELECT " + personColumns + " FROM people WHERE username = ?"
	p, err := scanPerson(r.db.QueryRow(query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person by username: %w", err)
	}
	return p, nil
}

// GetByEmail retrieves a person by email address. Used to map external
// identities onto existing members.
func (r *PersonRepository) GetByEmail(email string) (*models.Person, error) {
	query := "SELECT " + personColumns + " FROM people WHERE email = ? ORDER BY id ASC LIMIT 1"
	p, err := scanPerson(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person by email: %w", err)
	}
	return p, nil
}

// GetAll retrieves every person, ordered by last then first name
func (r *PersonRepository) GetAll() ([]models.Person, error) {
	query := "SELECT " + personColumns + " FROM people ORDER BY last_name ASC, first_name ASC, id ASC"
	return r.queryPeople(query)
}

// GetByHousehold retrieves all members of one household
func (r *PersonRepository) GetByHousehold(householdID int64) ([]models.Person, error) {
	query := "SELECT " + personColumns + " FROM people WHERE household_id = ? ORDER BY id ASC"
	return r.queryPeople(query, householdID)
}

func (r *PersonRepository) queryPeople(query string, args ...interface{}) ([]models.Person, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

// Update persists all mutable fields of a person
func (r *PersonRepository) Update(p *models.Person) error {
	query := `
		UPDATE people SET username = ?, password_hash = ?, is_admin = ?,
			first_name = ?, last_name = ?, role = ?, gender = ?, email = ?, phone_number = ?,
			has_food_allergies = ?, food_allergies_detail = ?, has_food_intolerances = ?, food_intolerances = ?,
			can_login = ?, email_confirmed = ?, email_confirmation_code = ?, household_id = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		nullableUsername(p.Username), p.PasswordHash, p.IsAdmin,
		p.FirstName, p.LastName, p.Role, p.Gender, p.Email, p.PhoneNumber,
		p.HasFoodAllergies, p.FoodAllergiesDetail, p.HasFoodIntolerances, p.FoodIntolerancesNote,
		p.CanLogin, p.EmailConfirmed, p.EmailConfirmationCode, nullableHouseholdID(p.HouseholdID),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return nil
}

// DeleteByID removes a person
func (r *PersonRepository) DeleteByID(id int64) error {
	query := "DELETE FROM people WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

// CreateSession creates a new session for a person
func (r *PersonRepository) CreateSession(sessionID string, personID int64, expiresAt time.Time) (*models.Session, error) {
	query := "INSERT INTO sessions (id, person_id, expires_at) VALUES (?, ?, ?)"
	_, err := r.db.Exec(query, sessionID, personID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:        sessionID,
		PersonID:  personID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID. Returns (nil, nil) when no row exists.
func (r *PersonRepository) GetSession(sessionID string) (*models.Session, error) {
	query := "SELECT id, person_id, expires_at, created_at FROM sessions WHERE id = ?"
	s := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(&s.ID, &s.PersonID, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// DeleteSession removes a session
func (r *PersonRepository) DeleteSession(sessionID string) error {
	query := "DELETE FROM sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry
func (r *PersonRepository) DeleteExpiredSessions() error {
	query := "DELETE FROM sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
