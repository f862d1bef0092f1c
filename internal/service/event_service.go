package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"packcamp/internal/models"
	"packcamp/internal/repository"
	"packcamp/internal/validation"
)

var ErrEventNotFound = errors.New("event not found")

// EventService manages the event calendar
type EventService struct {
	eventRepo *repository.EventRepository
	now       func() time.Time
}

// NewEventService creates a new event service
func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		now:       time.Now,
	}
}

// ParseDuration turns a raw duration form value into a day count. Missing
// or non-numeric input falls back to the default; the result is never
// below one day.
func ParseDuration(raw string) int {
	days, err := strconv.Atoi(raw)
	if err != nil {
		return models.DefaultEventDurationDays
	}
	if days < 1 {
		return 1
	}
	return days
}

// SaveEvent validates and persists an event, creating or updating as needed
func (s *EventService) SaveEvent(event *models.Event) (*models.Event, error) {
	if err := validation.ValidateDate(event.Date); err != nil {
		return nil, err
	}
	if event.EventType != models.EventTypeCamping && event.EventType != models.EventTypeOther {
		return nil, validation.Error{Field: "event_type", Message: "unknown event type"}
	}
	if strings.TrimSpace(event.Location) == "" {
		return nil, validation.Error{Field: "location", Message: "location is required"}
	}
	if event.DurationInDays < 1 {
		event.DurationInDays = models.DefaultEventDurationDays
	}

	if event.ID == 0 {
		created, err := s.eventRepo.Create(event)
		if err != nil {
			return nil, fmt.Errorf("failed to create event: %w", err)
		}
		return created, nil
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// GetAllEvents returns every event in date order
func (s *EventService) GetAllEvents() ([]models.Event, error) {
	events, err := s.eventRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// PartitionEvents splits events into upcoming and past relative to now,
// preserving the incoming date order.
func PartitionEvents(events []models.Event, now time.Time) (upcoming, past []models.Event) {
	for _, e := range events {
		if e.IsUpcoming(now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return upcoming, past
}

// UpcomingAndPast loads all events split around the current time
func (s *EventService) UpcomingAndPast() (upcoming, past []models.Event, err error) {
	events, err := s.GetAllEvents()
	if err != nil {
		return nil, nil, err
	}
	upcoming, past = PartitionEvents(events, s.now())
	return upcoming, past, nil
}

// Participants returns the people with a registration for the event
func (s *EventService) Participants(eventID int64) ([]models.Person, error) {
	people, err := s.eventRepo.GetParticipants(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return people, nil
}

// DeleteEvent removes an event and, through the schema, its registrations
func (s *EventService) DeleteEvent(id int64) error {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}

	if err := s.eventRepo.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
