package models

import (
	"time"
)

// DateLayout is the wire format for event dates
const DateLayout = "2006-01-02"

// Event types recognized by the system
const (
	EventTypeCamping = "Camping"
	EventTypeOther   = "Other"
)

// DefaultEventDurationDays applies when an event is created without a
// usable duration value.
const DefaultEventDurationDays = 2

// Event represents a scheduled activity members can register for
type Event struct {
	ID             int64
	EventType      string
	Date           string // YYYY-MM-DD
	Location       string
	Details        string // markdown
	DurationInDays int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DateTime parses the event date at midnight local time.
func (e *Event) DateTime() (time.Time, error) {
	return time.ParseInLocation(DateLayout, e.Date, time.Local)
}

// IsUpcoming reports whether the event date falls strictly after now.
// An event dated exactly now counts as past.
func (e *Event) IsUpcoming(now time.Time) bool {
	d, err := e.DateTime()
	if err != nil {
		return false
	}
	return d.After(now)
}
