package models

import (
	"testing"
	"time"
)

func TestEventIsUpcoming(t *testing.T) {
	now := time.Date(2026, 5, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{
			name: "tomorrow",
			date: "2026-05-16",
			want: true,
		},
		{
			name: "next month",
			date: "2026-06-01",
			want: true,
		},
		{
			name: "yesterday",
			date: "2026-05-14",
			want: false,
		},
		{
			name: "today counts as past",
			date: "2026-05-15",
			want: false,
		},
		{
			name: "unparseable date counts as past",
			date: "not-a-date",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{Date: tt.date}
			if got := e.IsUpcoming(now); got != tt.want {
				t.Errorf("IsUpcoming(%s) with date %q = %v, want %v", now, tt.date, got, tt.want)
			}
		})
	}
}

func TestEventExactMidnightIsPast(t *testing.T) {
	// Strict greater-than defines upcoming; a date equal to "now" is past
	e := Event{Date: "2026-05-15"}
	midnight := time.Date(2026, 5, 15, 0, 0, 0, 0, time.Local)
	if e.IsUpcoming(midnight) {
		t.Error("IsUpcoming() = true for an event dated exactly now")
	}
}
