package models

import "testing"

func TestRegistrationCostCents(t *testing.T) {
	tests := []struct {
		name string
		reg  Registration
		want int
	}{
		{
			name: "no meals",
			reg:  Registration{StayFridayNight: true},
			want: 0,
		},
		{
			name: "two meals",
			reg:  Registration{EatSaturdayLunch: true, EatSundayBreakfast: true},
			want: 1000,
		},
		{
			name: "all four meals",
			reg: Registration{
				EatSaturdayBreakfast: true,
				EatSaturdayLunch:     true,
				EatSaturdayDinner:    true,
				EatSundayBreakfast:   true,
			},
			want: 2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reg.CostCents(DefaultMealPriceCents); got != tt.want {
				t.Errorf("CostCents(%d) = %d, want %d", DefaultMealPriceCents, got, tt.want)
			}
		})
	}
}

func TestRegistrationIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		reg  Registration
		want bool
	}{
		{
			name: "all flags false",
			reg:  Registration{},
			want: true,
		},
		{
			name: "paid flag alone does not keep a registration",
			reg:  Registration{HasPaid: true},
			want: true,
		},
		{
			name: "overnight only",
			reg:  Registration{StaySaturdayNight: true},
			want: false,
		},
		{
			name: "meal only",
			reg:  Registration{EatSaturdayDinner: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reg.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistrationApply(t *testing.T) {
	reg := Registration{ID: 7, PersonID: 2, EventID: 3, HasPaid: true, EatSaturdayLunch: true}
	reg.Apply(RegistrationSelection{
		StayFridayNight:    true,
		EatSundayBreakfast: true,
	})

	if reg.EatSaturdayLunch {
		t.Error("Apply() kept a flag the submission cleared")
	}
	if !reg.StayFridayNight || !reg.EatSundayBreakfast {
		t.Error("Apply() dropped submitted flags")
	}
	if !reg.HasPaid {
		t.Error("Apply() cleared the admin-managed payment flag")
	}
}
