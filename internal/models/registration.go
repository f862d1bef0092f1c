package models

import "time"

// DefaultMealPriceCents is the fixed per-meal charge ($5/meal) applied when
// no override is configured.
const DefaultMealPriceCents = 500

// Registration records one person's commitment to attend one event, with
// their overnight and meal selections. The (PersonID, EventID) pair is
// unique; cost is derived from the meal flags and never stored.
type Registration struct {
	ID             int64
	PersonID       int64
	EventID        int64
	RegisteredAt   time.Time

	StayFridayNight   bool
	StaySaturdayNight bool

	EatSaturdayBreakfast bool
	EatSaturdayLunch     bool
	EatSaturdayDinner    bool
	EatSundayBreakfast   bool

	HasPaid bool
}

// MealCount returns the number of selected meals.
func (r *Registration) MealCount() int {
	count := 0
	for _, flag := range []bool{r.EatSaturdayBreakfast, r.EatSaturdayLunch, r.EatSaturdayDinner, r.EatSundayBreakfast} {
		if flag {
			count++
		}
	}
	return count
}

// CostCents returns the derived cost at the given per-meal price.
func (r *Registration) CostCents(mealPriceCents int) int {
	return r.MealCount() * mealPriceCents
}

// IsEmpty reports whether every selection flag is false. An empty
// registration is deleted on submit rather than stored.
func (r *Registration) IsEmpty() bool {
	return !r.StayFridayNight && !r.StaySaturdayNight &&
		!r.EatSaturdayBreakfast && !r.EatSaturdayLunch &&
		!r.EatSaturdayDinner && !r.EatSundayBreakfast
}

// RegistrationSelection carries the submitted flag values for one person on
// a family registration form.
type RegistrationSelection struct {
	StayFridayNight   bool
	StaySaturdayNight bool

	EatSaturdayBreakfast bool
	EatSaturdayLunch     bool
	EatSaturdayDinner    bool
	EatSundayBreakfast   bool
}

// Apply copies the submitted selection onto the registration. The payment
// flag is admin-managed and untouched by form submissions.
func (r *Registration) Apply(sel RegistrationSelection) {
	r.StayFridayNight = sel.StayFridayNight
	r.StaySaturdayNight = sel.StaySaturdayNight
	r.EatSaturdayBreakfast = sel.EatSaturdayBreakfast
	r.EatSaturdayLunch = sel.EatSaturdayLunch
	r.EatSaturdayDinner = sel.EatSaturdayDinner
	r.EatSundayBreakfast = sel.EatSundayBreakfast
}
