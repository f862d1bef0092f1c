package service

import (
	"testing"

	"packcamp/internal/models"
)

func reportFixture() ([]models.Registration, map[int64]models.Person, map[int64]models.Household) {
	households := map[int64]models.Household{
		1: {ID: 1, Name: "Smith", EmergencyContact1FirstName: "Ann", EmergencyContact1LastName: "Smith", EmergencyContact1Phone: "555-0101", CarLicensePlates: "ABC 123"},
		2: {ID: 2, Name: "Brown", EmergencyContact1FirstName: "Bob", EmergencyContact1LastName: "Brown", EmergencyContact1Phone: "555-0202"},
	}
	people := map[int64]models.Person{
		1: {ID: 1, FirstName: "Ann", LastName: "Smith", Role: "Parent", HouseholdID: 1, Email: "ann@example.com", PhoneNumber: "555-0101"},
		2: {ID: 2, FirstName: "Tim", LastName: "Smith", Role: "Cub", HouseholdID: 1, HasFoodAllergies: true, FoodAllergiesDetail: "peanuts"},
		3: {ID: 3, FirstName: "Bob", LastName: "Brown", Role: "Parent", HouseholdID: 2, Email: "bob@example.com"},
		4: {ID: 4, FirstName: "Zoe", LastName: "Gray", Role: "Cub", HouseholdID: 0},
	}
	regs := []models.Registration{
		{ID: 1, PersonID: 1, EventID: 1, StayFridayNight: true, EatSaturdayBreakfast: true, EatSaturdayLunch: true},
		{ID: 2, PersonID: 2, EventID: 1, StayFridayNight: true, EatSaturdayBreakfast: true},
		{ID: 3, PersonID: 3, EventID: 1, EatSaturdayDinner: true, EatSundayBreakfast: true, HasPaid: true},
		{ID: 4, PersonID: 4, EventID: 1, StaySaturdayNight: true},
	}
	return regs, people, households
}

func TestBuildEventReportOrdering(t *testing.T) {
	regs, people, households := reportFixture()

	report := BuildEventReport(regs, people, households, 500, false)

	if len(report.Participants) != 4 {
		t.Fatalf("expected 4 participants, got %d", len(report.Participants))
	}

	// Household name ascending, person ID breaking ties, Unknown last
	wantOrder := []struct {
		householdName string
		personID      int64
	}{
		{"Brown", 3},
		{"Smith", 1},
		{"Smith", 2},
		{"Unknown", 4},
	}
	for i, want := range wantOrder {
		got := report.Participants[i]
		if got.HouseholdName != want.householdName || got.PersonID != want.personID {
			t.Errorf("row %d: got (%s, %d), want (%s, %d)", i, got.HouseholdName, got.PersonID, want.householdName, want.personID)
		}
	}
}

func TestBuildEventReportNames(t *testing.T) {
	regs, people, households := reportFixture()

	report := BuildEventReport(regs, people, households, 500, false)

	// "First Last (role)" exactly once per row
	wantNames := map[int64]string{
		1: "Ann Smith (Parent)",
		2: "Tim Smith (Cub)",
		3: "Bob Brown (Parent)",
		4: "Zoe Gray (Cub)",
	}
	for _, row := range report.Participants {
		if want := wantNames[row.PersonID]; row.Name != want {
			t.Errorf("person %d: name = %q, want %q", row.PersonID, row.Name, want)
		}
	}
}

func TestBuildEventReportCosts(t *testing.T) {
	regs, people, households := reportFixture()

	report := BuildEventReport(regs, people, households, 500, false)

	// Smith: Ann 2 meals + Tim 1 meal = $15; Brown: Bob 2 meals = $10;
	// Unknown: Zoe 0 meals = $0
	wantCosts := map[string]int{
		"Smith":   1500,
		"Brown":   1000,
		"Unknown": 0,
	}
	if len(report.HouseholdCosts) != 3 {
		t.Fatalf("expected 3 household blocks, got %d", len(report.HouseholdCosts))
	}
	for _, hc := range report.HouseholdCosts {
		want, ok := wantCosts[hc.HouseholdName]
		if !ok {
			t.Errorf("unexpected household %q", hc.HouseholdName)
			continue
		}
		if hc.TotalCents != want {
			t.Errorf("household %s: total %d cents, want %d", hc.HouseholdName, hc.TotalCents, want)
		}
	}

	// Per-row cost derives from meal count only; nights are free
	for _, row := range report.Participants {
		if row.PersonID == 4 && row.CostCents != 0 {
			t.Errorf("overnight-only registration should cost 0, got %d", row.CostCents)
		}
	}
}

func TestBuildEventReportCustomMealPrice(t *testing.T) {
	regs, people, households := reportFixture()

	report := BuildEventReport(regs, people, households, 750, false)

	for _, row := range report.Participants {
		want := row.Registration.MealCount() * 750
		if row.CostCents != want {
			t.Errorf("person %d: cost %d, want %d", row.PersonID, row.CostCents, want)
		}
	}
}

func TestBuildEventReportMemberView(t *testing.T) {
	regs, people, households := reportFixture()

	report := BuildEventReport(regs, people, households, 500, false)

	if report.MealTotals != nil {
		t.Error("member view should not include meal totals")
	}
	if report.ContactEmails != nil || report.ContactPhones != nil {
		t.Error("member view should not include the contact lists")
	}
	if report.Emergencies != nil {
		t.Error("member view should not include the emergency roster")
	}
	for _, row := range report.Participants {
		if row.Email != "" || row.PhoneNumber != "" {
			t.Errorf("person %d: contact details leaked to member view", row.PersonID)
		}
		if row.AllergyNote != "" || row.IntoleranceNote != "" {
			t.Errorf("person %d: dietary details leaked to member view", row.PersonID)
		}
		if row.ShowPaymentState {
			t.Errorf("person %d: payment state leaked to member view", row.PersonID)
		}
	}
}

func TestBuildEventReportAdminView(t *testing.T) {
	regs, people, households := reportFixture()

	report := BuildEventReport(regs, people, households, 500, true)

	if report.MealTotals == nil {
		t.Fatal("admin view should include meal totals")
	}
	totals := report.MealTotals
	if totals.FridayNight != 2 || totals.SaturdayNight != 1 {
		t.Errorf("night totals: friday=%d saturday=%d, want 2 and 1", totals.FridayNight, totals.SaturdayNight)
	}
	if totals.SaturdayBreakfast != 2 || totals.SaturdayLunch != 1 || totals.SaturdayDinner != 1 || totals.SundayBreakfast != 1 {
		t.Errorf("meal totals wrong: %+v", totals)
	}
	if totals.TotalMeals != 5 {
		t.Errorf("total meals = %d, want 5", totals.TotalMeals)
	}
	if totals.TotalCostCents != 2500 {
		t.Errorf("total cost = %d, want 2500", totals.TotalCostCents)
	}

	// Deduplicated and sorted contact lists
	wantEmails := []string{"ann@example.com", "bob@example.com"}
	if len(report.ContactEmails) != len(wantEmails) {
		t.Fatalf("expected %d emails, got %d", len(wantEmails), len(report.ContactEmails))
	}
	for i, want := range wantEmails {
		if report.ContactEmails[i] != want {
			t.Errorf("email %d = %q, want %q", i, report.ContactEmails[i], want)
		}
	}
	if len(report.ContactPhones) != 1 || report.ContactPhones[0] != "555-0101" {
		t.Errorf("phones = %v, want [555-0101]", report.ContactPhones)
	}

	// Each participating household once, no entry for the Unknown bucket
	if len(report.Emergencies) != 2 {
		t.Fatalf("expected 2 emergency entries, got %d", len(report.Emergencies))
	}
	if report.Emergencies[0].HouseholdName != "Brown" {
		t.Errorf("first emergency entry = %s, want Brown", report.Emergencies[0].HouseholdName)
	}
	if report.Emergencies[1].CarLicensePlates != "ABC 123" {
		t.Errorf("Smith plates = %q, want ABC 123", report.Emergencies[1].CarLicensePlates)
	}

	// Allergy note carries through for admins
	found := false
	for _, row := range report.Participants {
		if row.PersonID == 2 {
			found = true
			if row.AllergyNote != "peanuts" {
				t.Errorf("allergy note = %q, want peanuts", row.AllergyNote)
			}
		}
	}
	if !found {
		t.Error("person 2 missing from report")
	}
}

func TestBuildEventReportEmpty(t *testing.T) {
	_, people, households := reportFixture()

	report := BuildEventReport(nil, people, households, 500, true)

	if len(report.Participants) != 0 {
		t.Errorf("expected no participants, got %d", len(report.Participants))
	}
	if len(report.HouseholdCosts) != 0 {
		t.Errorf("expected no household costs, got %d", len(report.HouseholdCosts))
	}
	if report.MealTotals == nil || report.MealTotals.TotalMeals != 0 || report.MealTotals.TotalCostCents != 0 {
		t.Errorf("expected zero meal totals, got %+v", report.MealTotals)
	}
	if len(report.ContactEmails) != 0 || len(report.ContactPhones) != 0 || len(report.Emergencies) != 0 {
		t.Error("expected empty contact and emergency lists")
	}
}

func TestBuildEventReportSkipsUnknownPeople(t *testing.T) {
	regs := []models.Registration{
		{ID: 1, PersonID: 99, EventID: 1, EatSaturdayLunch: true},
	}

	report := BuildEventReport(regs, map[int64]models.Person{}, map[int64]models.Household{}, 500, true)

	if len(report.Participants) != 0 {
		t.Errorf("registration for missing person should be skipped, got %d rows", len(report.Participants))
	}
}
