package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"packcamp/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version       string               `json:"version"`
	ExportedAt    time.Time            `json:"exported_at"`
	DatabaseType  string               `json:"database_type"`
	Households    []HouseholdBackup    `json:"households"`
	People        []PersonBackup       `json:"people"`
	Events        []EventBackup        `json:"events"`
	Registrations []RegistrationBackup `json:"registrations"`
}

// HouseholdBackup represents a household record for backup
type HouseholdBackup struct {
	ID                         int64     `json:"id"`
	Name                       string    `json:"name"`
	EmergencyContact1FirstName string    `json:"emergency_contact_1_first_name"`
	EmergencyContact1LastName  string    `json:"emergency_contact_1_last_name"`
	EmergencyContact1Phone     string    `json:"emergency_contact_1_phone"`
	EmergencyContact2FirstName string    `json:"emergency_contact_2_first_name"`
	EmergencyContact2LastName  string    `json:"emergency_contact_2_last_name"`
	EmergencyContact2Phone     string    `json:"emergency_contact_2_phone"`
	CarLicensePlates           string    `json:"car_license_plates"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

// PersonBackup represents a person record for backup
type PersonBackup struct {
	ID                    int64     `json:"id"`
	Username              *string   `json:"username"`
	PasswordHash          string    `json:"password_hash"`
	IsAdmin               bool      `json:"is_admin"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Role                  string    `json:"role"`
	Gender                string    `json:"gender"`
	Email                 string    `json:"email"`
	PhoneNumber           string    `json:"phone_number"`
	HasFoodAllergies      bool      `json:"has_food_allergies"`
	FoodAllergiesDetail   string    `json:"food_allergies_detail"`
	HasFoodIntolerances   bool      `json:"has_food_intolerances"`
	FoodIntolerancesNote  string    `json:"food_intolerances"`
	CanLogin              bool      `json:"can_login"`
	EmailConfirmed        bool      `json:"email_confirmed"`
	EmailConfirmationCode string    `json:"email_confirmation_code"`
	HouseholdID           *int64    `json:"household_id"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// EventBackup represents an event record for backup
type EventBackup struct {
	ID             int64     `json:"id"`
	EventType      string    `json:"event_type"`
	Date           string    `json:"date"`
	Location       string    `json:"location"`
	Details        string    `json:"details"`
	DurationInDays int       `json:"duration_in_days"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RegistrationBackup represents an event registration for backup
type RegistrationBackup struct {
	ID                   int64     `json:"id"`
	PersonID             int64     `json:"person_id"`
	EventID              int64     `json:"event_id"`
	RegisteredAt         time.Time `json:"registered_at"`
	StayFridayNight      bool      `json:"stay_friday_night"`
	StaySaturdayNight    bool      `json:"stay_saturday_night"`
	EatSaturdayBreakfast bool      `json:"eat_saturday_breakfast"`
	EatSaturdayLunch     bool      `json:"eat_saturday_lunch"`
	EatSaturdayDinner    bool      `json:"eat_saturday_dinner"`
	EatSundayBreakfast   bool      `json:"eat_sunday_breakfast"`
	HasPaid              bool      `json:"has_paid"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportHouseholds(backup); err != nil {
		return fmt.Errorf("failed to export households: %w", err)
	}
	if err := s.exportPeople(backup); err != nil {
		return fmt.Errorf("failed to export people: %w", err)
	}
	if err := s.exportEvents(backup); err != nil {
		return fmt.Errorf("failed to export events: %w", err)
	}
	if err := s.exportRegistrations(backup); err != nil {
		return fmt.Errorf("failed to export registrations: %w", err)
	}

	log.Printf("Exported: %d households, %d people, %d events, %d registrations",
		len(backup.Households), len(backup.People), len(backup.Events), len(backup.Registrations))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader (for file uploads)
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importHouseholds(backup.Households); err != nil {
		return fmt.Errorf("failed to import households: %w", err)
	}
	if err := s.importPeople(backup.People); err != nil {
		return fmt.Errorf("failed to import people: %w", err)
	}
	if err := s.importEvents(backup.Events); err != nil {
		return fmt.Errorf("failed to import events: %w", err)
	}
	if err := s.importRegistrations(backup.Registrations); err != nil {
		return fmt.Errorf("failed to import registrations: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportHouseholds(backup *BackupData) error {
	query := `SELECT id, name,
		emergency_contact_1_first_name, emergency_contact_1_last_name, emergency_contact_1_phone,
		emergency_contact_2_first_name, emergency_contact_2_last_name, emergency_contact_2_phone,
		car_license_plates, created_at, updated_at FROM households ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var h HouseholdBackup
		if err := rows.Scan(&h.ID, &h.Name,
			&h.EmergencyContact1FirstName, &h.EmergencyContact1LastName, &h.EmergencyContact1Phone,
			&h.EmergencyContact2FirstName, &h.EmergencyContact2LastName, &h.EmergencyContact2Phone,
			&h.CarLicensePlates, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return err
		}
		backup.Households = append(backup.Households, h)
	}
	return rows.Err()
}

func (s *BackupService) exportPeople(backup *BackupData) error {
	query := `SELECT id, username, password_hash, is_admin,
		first_name, last_name, role, gender, email, phone_number,
		has_food_allergies, food_allergies_detail, has_food_intolerances, food_intolerances,
		can_login, email_confirmed, email_confirmation_code,
		household_id, created_at, updated_at FROM people ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PersonBackup
		var username sql.NullString
		var householdID sql.NullInt64
		if err := rows.Scan(&p.ID, &username, &p.PasswordHash, &p.IsAdmin,
			&p.FirstName, &p.LastName, &p.Role, &p.Gender, &p.Email, &p.PhoneNumber,
			&p.HasFoodAllergies, &p.FoodAllergiesDetail, &p.HasFoodIntolerances, &p.FoodIntolerancesNote,
			&p.CanLogin, &p.EmailConfirmed, &p.EmailConfirmationCode,
			&householdID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		if username.Valid {
			p.Username = &username.String
		}
		if householdID.Valid {
			p.HouseholdID = &householdID.Int64
		}
		backup.People = append(backup.People, p)
	}
	return rows.Err()
}

func (s *BackupService) exportEvents(backup *BackupData) error {
	query := "SELECT id, event_type, date, location, details, duration_in_days, created_at, updated_at FROM events ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e EventBackup
		if err := rows.Scan(&e.ID, &e.EventType, &e.Date, &e.Location, &e.Details, &e.DurationInDays, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return err
		}
		backup.Events = append(backup.Events, e)
	}
	return rows.Err()
}

func (s *BackupService) exportRegistrations(backup *BackupData) error {
	query := `SELECT id, person_id, event_id, registered_at,
		stay_friday_night, stay_saturday_night,
		eat_saturday_breakfast, eat_saturday_lunch, eat_saturday_dinner, eat_sunday_breakfast,
		has_paid FROM event_registrations ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var reg RegistrationBackup
		if err := rows.Scan(&reg.ID, &reg.PersonID, &reg.EventID, &reg.RegisteredAt,
			&reg.StayFridayNight, &reg.StaySaturdayNight,
			&reg.EatSaturdayBreakfast, &reg.EatSaturdayLunch, &reg.EatSaturdayDinner, &reg.EatSundayBreakfast,
			&reg.HasPaid); err != nil {
			return err
		}
		backup.Registrations = append(backup.Registrations, reg)
	}
	return rows.Err()
}

func (s *BackupService) importHouseholds(households []HouseholdBackup) error {
	log.Printf("Importing %d households...", len(households))
	for _, h := range households {
		query := `INSERT INTO households (id, name,
			emergency_contact_1_first_name, emergency_contact_1_last_name, emergency_contact_1_phone,
			emergency_contact_2_first_name, emergency_contact_2_last_name, emergency_contact_2_phone,
			car_license_plates, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, h.ID, h.Name,
			h.EmergencyContact1FirstName, h.EmergencyContact1LastName, h.EmergencyContact1Phone,
			h.EmergencyContact2FirstName, h.EmergencyContact2LastName, h.EmergencyContact2Phone,
			h.CarLicensePlates, h.CreatedAt, h.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import household %d: %w", h.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importPeople(people []PersonBackup) error {
	log.Printf("Importing %d people...", len(people))
	for _, p := range people {
		var username interface{} = nil
		if p.Username != nil {
			username = *p.Username
		}
		var householdID interface{} = nil
		if p.HouseholdID != nil {
			householdID = *p.HouseholdID
		}
		query := `INSERT INTO people (id, username, password_hash, is_admin,
			first_name, last_name, role, gender, email, phone_number,
			has_food_allergies, food_allergies_detail, has_food_intolerances, food_intolerances,
			can_login, email_confirmed, email_confirmation_code,
			household_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, p.ID, username, p.PasswordHash, p.IsAdmin,
			p.FirstName, p.LastName, p.Role, p.Gender, p.Email, p.PhoneNumber,
			p.HasFoodAllergies, p.FoodAllergiesDetail, p.HasFoodIntolerances, p.FoodIntolerancesNote,
			p.CanLogin, p.EmailConfirmed, p.EmailConfirmationCode,
			householdID, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import person %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importEvents(events []EventBackup) error {
	log.Printf("Importing %d events...", len(events))
	for _, e := range events {
		query := `INSERT INTO events (id, event_type, date, location, details, duration_in_days, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, e.ID, e.EventType, e.Date, e.Location, e.Details, e.DurationInDays, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import event %d: %w", e.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importRegistrations(regs []RegistrationBackup) error {
	log.Printf("Importing %d registrations...", len(regs))
	for _, reg := range regs {
		query := `INSERT INTO event_registrations (id, person_id, event_id, registered_at,
			stay_friday_night, stay_saturday_night,
			eat_saturday_breakfast, eat_saturday_lunch, eat_saturday_dinner, eat_sunday_breakfast,
			has_paid)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(query, reg.ID, reg.PersonID, reg.EventID, reg.RegisteredAt,
			reg.StayFridayNight, reg.StaySaturdayNight,
			reg.EatSaturdayBreakfast, reg.EatSaturdayLunch, reg.EatSaturdayDinner, reg.EatSundayBreakfast,
			reg.HasPaid)
		if err != nil {
			return fmt.Errorf("failed to import registration %d: %w", reg.ID, err)
		}
	}
	return nil
}
