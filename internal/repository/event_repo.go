package repository

import (
	"database/sql"
	"fmt"
	"time"

	"packcamp/internal/database"
	"packcamp/internal/models"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = "id, event_type, date, location, details, duration_in_days, created_at, updated_at"

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(&e.ID, &e.EventType, &e.Date, &e.Location, &e.Details, &e.DurationInDays, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a new event
func (r *EventRepository) Create(e *models.Event) (*models.Event, error) {
	query := `
		INSERT INTO events (event_type, date, location, details, duration_in_days)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, e.EventType, e.Date, e.Location, e.Details, e.DurationInDays)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	e.ID = id
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	return e, nil
}

// GetByID retrieves an event by ID. Returns (nil, nil) when no row exists.
func (r *EventRepository) GetByID(id int64) (*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = ?"
	e, err := scanEvent(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// GetAll retrieves every event ordered by date
func (r *EventRepository) GetAll() ([]models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events ORDER BY date ASC, id ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetParticipants retrieves the distinct people holding a registration for
// the event.
func (r *EventRepository) GetParticipants(eventID int64) ([]models.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM people
		WHERE id IN (SELECT person_id FROM event_registrations WHERE event_id = ?)
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

// Update persists all mutable fields of an event
func (r *EventRepository) Update(e *models.Event) error {
	query := `
		UPDATE events SET event_type = ?, date = ?, location = ?, details = ?,
			duration_in_days = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, e.EventType, e.Date, e.Location, e.Details, e.DurationInDays, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteByID removes an event and, via the foreign key, its registrations
func (r *EventRepository) DeleteByID(id int64) error {
	query := "DELETE FROM events WHERE id = ?"
	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
