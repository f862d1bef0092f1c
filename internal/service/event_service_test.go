package service

import (
	"errors"
	"testing"
	"time"

	"packcamp/internal/models"
	"packcamp/internal/validation"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"valid", "3", 3},
		{"single day", "1", 1},
		{"missing", "", models.DefaultEventDurationDays},
		{"non-numeric", "two", models.DefaultEventDurationDays},
		{"zero clamps to one", "0", 1},
		{"negative clamps to one", "-4", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDuration(tt.raw); got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSaveEventValidation(t *testing.T) {
	s := &EventService{}

	tests := []struct {
		name  string
		event models.Event
		field string
	}{
		{"missing date", models.Event{EventType: models.EventTypeCamping, Location: "Camp Ridge"}, "date"},
		{"bad date", models.Event{EventType: models.EventTypeCamping, Date: "June 1st", Location: "Camp Ridge"}, "date"},
		{"unknown type", models.Event{EventType: "Picnic", Date: "2026-06-01", Location: "Camp Ridge"}, "event_type"},
		{"missing location", models.Event{EventType: models.EventTypeOther, Date: "2026-06-01"}, "location"},
		{"blank location", models.Event{EventType: models.EventTypeOther, Date: "2026-06-01", Location: "   "}, "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SaveEvent(&tt.event)
			var vErr validation.Error
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestPartitionEvents(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)
	events := []models.Event{
		{ID: 1, Date: "2026-06-01"},
		{ID: 2, Date: "2026-06-15"}, // today counts as past
		{ID: 3, Date: "2026-06-20"},
		{ID: 4, Date: "2026-07-04"},
		{ID: 5, Date: "not-a-date"}, // unparseable counts as past
	}

	upcoming, past := PartitionEvents(events, now)

	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(upcoming))
	}
	if upcoming[0].ID != 3 || upcoming[1].ID != 4 {
		t.Errorf("upcoming order wrong: got %d, %d", upcoming[0].ID, upcoming[1].ID)
	}

	if len(past) != 3 {
		t.Fatalf("expected 3 past events, got %d", len(past))
	}
	if past[0].ID != 1 || past[1].ID != 2 || past[2].ID != 5 {
		t.Errorf("past order wrong: got %d, %d, %d", past[0].ID, past[1].ID, past[2].ID)
	}
}

func TestPartitionEventsEmpty(t *testing.T) {
	upcoming, past := PartitionEvents(nil, time.Now())
	if len(upcoming) != 0 || len(past) != 0 {
		t.Errorf("expected empty partitions, got %d upcoming and %d past", len(upcoming), len(past))
	}
}
